package emaildomain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uni-hub/student-records-hub/internal/domain/shared"
)

// memoryRepo is a minimal in-memory Repository for service tests.
type memoryRepo struct {
	domains []*EmailDomain
}

func (r *memoryRepo) Create(_ context.Context, d *EmailDomain) error {
	r.domains = append(r.domains, d)
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*EmailDomain, error) {
	for _, d := range r.domains {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, shared.ErrEmailDomainNotFound
}

func (r *memoryRepo) GetByDomain(_ context.Context, domain string) (*EmailDomain, error) {
	for _, d := range r.domains {
		if d.Domain == domain {
			return d, nil
		}
	}
	return nil, shared.ErrEmailDomainNotFound
}

func (r *memoryRepo) Delete(_ context.Context, id string) error { return nil }

func (r *memoryRepo) GetAll(_ context.Context) ([]*EmailDomain, error) {
	return r.domains, nil
}

func (r *memoryRepo) ExistsByDomain(_ context.Context, domain string) (bool, error) {
	_, err := r.GetByDomain(context.Background(), domain)
	return err == nil, nil
}

func newTestAllowList(t *testing.T, domains ...string) *AllowList {
	t.Helper()
	repo := &memoryRepo{}
	for _, domain := range domains {
		repo.domains = append(repo.domains, mustDomain(t, domain))
	}
	return NewAllowList(repo)
}

func TestAllowList_Match(t *testing.T) {
	list := newTestAllowList(t, "student.hcmus.edu.vn", "hcmus.edu.vn")
	ctx := context.Background()

	d, err := list.Match(ctx, "an@student.hcmus.edu.vn")
	require.NoError(t, err)
	assert.Equal(t, "student.hcmus.edu.vn", d.Domain)

	_, err = list.Match(ctx, "an@gmail.com")
	assert.True(t, shared.IsNotFound(err))

	_, err = list.Match(ctx, "not-an-email")
	assert.True(t, shared.IsValidation(err))
}

func TestAllowList_IsAllowed(t *testing.T) {
	list := newTestAllowList(t, "hcmus.edu.vn")
	ctx := context.Background()

	ok, err := list.IsAllowed(ctx, "an@hcmus.edu.vn")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = list.IsAllowed(ctx, "an@gmail.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = list.IsAllowed(ctx, "broken input")
	require.NoError(t, err)
	assert.False(t, ok, "malformed addresses are rejected, not errors")
}

func TestAllowList_MatchHierarchy(t *testing.T) {
	list := newTestAllowList(t, "edu.vn", "hcmus.edu.vn", "student.hcmus.edu.vn", "gmail.com")
	ctx := context.Background()

	matched, err := list.MatchHierarchy(ctx, "an@student.hcmus.edu.vn")
	require.NoError(t, err)
	require.Len(t, matched, 3)

	// Most specific first.
	assert.Equal(t, "student.hcmus.edu.vn", matched[0].Domain)
	assert.Equal(t, "hcmus.edu.vn", matched[1].Domain)
	assert.Equal(t, "edu.vn", matched[2].Domain)

	matched, err = list.MatchHierarchy(ctx, "an@outlook.com")
	require.NoError(t, err)
	assert.Empty(t, matched)
}
