package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uni-hub/student-records-hub/internal/domain/emaildomain"
	"github.com/uni-hub/student-records-hub/internal/domain/shared"
)

type memDomainRepo struct {
	byDomain map[string]*emaildomain.EmailDomain
}

func newMemDomainRepo(domains ...*emaildomain.EmailDomain) *memDomainRepo {
	r := &memDomainRepo{byDomain: make(map[string]*emaildomain.EmailDomain)}
	for _, d := range domains {
		r.byDomain[d.Domain] = d
	}
	return r
}

func (r *memDomainRepo) Create(_ context.Context, d *emaildomain.EmailDomain) error {
	r.byDomain[d.Domain] = d
	return nil
}

func (r *memDomainRepo) GetByID(_ context.Context, id string) (*emaildomain.EmailDomain, error) {
	for _, d := range r.byDomain {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, shared.ErrEmailDomainNotFound
}

func (r *memDomainRepo) GetByDomain(_ context.Context, domain string) (*emaildomain.EmailDomain, error) {
	d, ok := r.byDomain[emaildomain.Normalize(domain)]
	if !ok {
		return nil, shared.ErrEmailDomainNotFound
	}
	return d, nil
}

func (r *memDomainRepo) Delete(_ context.Context, id string) error {
	for key, d := range r.byDomain {
		if d.ID == id {
			delete(r.byDomain, key)
		}
	}
	return nil
}

func (r *memDomainRepo) GetAll(_ context.Context) ([]*emaildomain.EmailDomain, error) {
	out := make([]*emaildomain.EmailDomain, 0, len(r.byDomain))
	for _, d := range r.byDomain {
		out = append(out, d)
	}
	return out, nil
}

func (r *memDomainRepo) ExistsByDomain(_ context.Context, domain string) (bool, error) {
	_, ok := r.byDomain[emaildomain.Normalize(domain)]
	return ok, nil
}

func registeredDomain(t *testing.T, domain string) *emaildomain.EmailDomain {
	t.Helper()
	d, err := emaildomain.New(emaildomain.Params{
		ID:        "dom-" + domain,
		Domain:    domain,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return d
}

func TestValidateEmail_AllowedDomain(t *testing.T) {
	repo := newMemDomainRepo(registeredDomain(t, "student.hcmus.edu.vn"))
	handler := NewValidateEmailHandler(emaildomain.NewAllowList(repo))

	result, err := handler.Handle(context.Background(), ValidateEmailQuery{
		Email: "An.Nguyen@Student.HCMUS.edu.vn",
	})
	require.NoError(t, err)

	assert.True(t, result.IsAllowed)
	assert.Equal(t, "student.hcmus.edu.vn", result.Domain)
	require.NotNil(t, result.Matched)
	assert.True(t, result.Matched.IsEducational)
}

func TestValidateEmail_UnlistedDomain(t *testing.T) {
	repo := newMemDomainRepo(registeredDomain(t, "student.hcmus.edu.vn"))
	handler := NewValidateEmailHandler(emaildomain.NewAllowList(repo))

	result, err := handler.Handle(context.Background(), ValidateEmailQuery{
		Email: "someone@gmail.com",
	})
	require.NoError(t, err)

	assert.False(t, result.IsAllowed)
	assert.Equal(t, "gmail.com", result.Domain)
	assert.Nil(t, result.Matched)
	assert.Contains(t, result.Message, "not in the allow-list")
}

func TestValidateEmail_MalformedAddress(t *testing.T) {
	handler := NewValidateEmailHandler(emaildomain.NewAllowList(newMemDomainRepo()))

	result, err := handler.Handle(context.Background(), ValidateEmailQuery{
		Email: "not-an-email",
	})
	require.NoError(t, err)

	assert.False(t, result.IsAllowed)
	assert.Empty(t, result.Domain)
	assert.Equal(t, "invalid email address format", result.Message)
}

func TestValidateEmail_RequiresEmail(t *testing.T) {
	handler := NewValidateEmailHandler(emaildomain.NewAllowList(newMemDomainRepo()))

	_, err := handler.Handle(context.Background(), ValidateEmailQuery{})
	assert.Error(t, err)
}
