package phonenumber

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uni-hub/student-records-hub/internal/domain/shared"
)

// memoryRepo is a minimal in-memory Repository for service tests.
// GetAll preserves insertion order, which the matcher relies on.
type memoryRepo struct {
	configs []*Config
}

func (r *memoryRepo) Create(_ context.Context, c *Config) error {
	r.configs = append(r.configs, c)
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Config, error) {
	for _, c := range r.configs {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, shared.ErrPhoneConfigNotFound
}

func (r *memoryRepo) GetByCountry(_ context.Context, country string) (*Config, error) {
	for _, c := range r.configs {
		if c.Country == country {
			return c, nil
		}
	}
	return nil, shared.ErrPhoneConfigNotFound
}

func (r *memoryRepo) Update(_ context.Context, c *Config) error { return nil }
func (r *memoryRepo) Delete(_ context.Context, id string) error { return nil }

func (r *memoryRepo) GetAll(_ context.Context) ([]*Config, error) {
	return r.configs, nil
}

func (r *memoryRepo) ExistsByCountry(_ context.Context, country string) (bool, error) {
	_, err := r.GetByCountry(context.Background(), country)
	return err == nil, nil
}

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	repo := &memoryRepo{}

	us, err := New(Params{Country: "United States", CountryCode: "+1", Pattern: `^\+1[2-9]\d{9}$`})
	require.NoError(t, err)
	vn, err := New(Params{Country: "Vietnam", CountryCode: "+84", Pattern: vietnamPattern})
	require.NoError(t, err)

	repo.configs = append(repo.configs, us, vn)
	return NewMatcher(repo)
}

func TestBestMatch_StrictTier(t *testing.T) {
	m := newTestMatcher(t)
	ctx := context.Background()

	// The US config comes first but does not match; the strict pass must
	// still find Vietnam before any fallback runs.
	c, err := m.BestMatch(ctx, "0901234567")
	require.NoError(t, err)
	assert.Equal(t, "Vietnam", c.Country)

	c, err = m.BestMatch(ctx, "+12125550123")
	require.NoError(t, err)
	assert.Equal(t, "United States", c.Country)
}

func TestBestMatch_PrefixFallback(t *testing.T) {
	m := newTestMatcher(t)
	ctx := context.Background()

	// Too short to match any pattern, but carries the +84 calling code.
	c, err := m.BestMatch(ctx, "+84 123")
	require.NoError(t, err)
	assert.Equal(t, "Vietnam", c.Country)

	// Same without the plus.
	c, err = m.BestMatch(ctx, "84123")
	require.NoError(t, err)
	assert.Equal(t, "Vietnam", c.Country)
}

func TestBestMatch_StrictPrecedesFallback(t *testing.T) {
	repo := &memoryRepo{}

	// A config whose calling code prefixes the number, listed first...
	loose, err := New(Params{Country: "Kazakhstan", CountryCode: "+7", Pattern: `^\+7\d{10}$`})
	require.NoError(t, err)
	// ...and a config whose pattern strictly matches it, listed second.
	strict, err := New(Params{Country: "Testland", CountryCode: "+70", Pattern: `^\+71\d{3}$`})
	require.NoError(t, err)
	repo.configs = append(repo.configs, loose, strict)

	c, err := NewMatcher(repo).BestMatch(context.Background(), "+71234")
	require.NoError(t, err)
	assert.Equal(t, "Testland", c.Country, "the whole strict pass runs before any prefix fallback")
}

func TestBestMatch_Miss(t *testing.T) {
	m := newTestMatcher(t)

	_, err := m.BestMatch(context.Background(), "0044123456")
	assert.True(t, shared.IsNotFound(err))
}

func TestMatcher_Validate(t *testing.T) {
	m := newTestMatcher(t)
	ctx := context.Background()

	result, err := m.Validate(ctx, "090 123 4567")
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Equal(t, "Vietnam", result.Country)

	// Fallback matches by prefix, so the result can still be negative.
	result, err = m.Validate(ctx, "+84 123")
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, "Vietnam", result.Country)
}
