package query

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uni-hub/student-records-hub/internal/domain/phonenumber"
	"github.com/uni-hub/student-records-hub/internal/domain/shared"
)

type memConfigRepo struct {
	configs []*phonenumber.Config
}

func (r *memConfigRepo) Create(_ context.Context, c *phonenumber.Config) error {
	r.configs = append(r.configs, c)
	return nil
}

func (r *memConfigRepo) GetByID(_ context.Context, id string) (*phonenumber.Config, error) {
	for _, c := range r.configs {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, shared.ErrPhoneConfigNotFound
}

func (r *memConfigRepo) GetByCountry(_ context.Context, country string) (*phonenumber.Config, error) {
	for _, c := range r.configs {
		if c.Country == country {
			return c, nil
		}
	}
	return nil, shared.ErrPhoneConfigNotFound
}

func (r *memConfigRepo) Update(_ context.Context, updated *phonenumber.Config) error {
	for i, c := range r.configs {
		if c.ID == updated.ID {
			r.configs[i] = updated
			return nil
		}
	}
	return shared.ErrPhoneConfigNotFound
}

func (r *memConfigRepo) Delete(_ context.Context, id string) error {
	for i, c := range r.configs {
		if c.ID == id {
			r.configs = append(r.configs[:i], r.configs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memConfigRepo) GetAll(_ context.Context) ([]*phonenumber.Config, error) {
	out := make([]*phonenumber.Config, len(r.configs))
	copy(out, r.configs)
	sort.Slice(out, func(i, j int) bool { return out[i].Country < out[j].Country })
	return out, nil
}

func (r *memConfigRepo) ExistsByCountry(_ context.Context, country string) (bool, error) {
	_, err := r.GetByCountry(context.Background(), country)
	return err == nil, nil
}

func registeredConfig(t *testing.T, country, code, pattern string) *phonenumber.Config {
	t.Helper()
	c, err := phonenumber.New(phonenumber.Params{
		ID:          "cfg-" + country,
		Country:     country,
		CountryCode: code,
		Pattern:     pattern,
	})
	require.NoError(t, err)
	return c
}

func TestMatchPhone_StrictTierWins(t *testing.T) {
	repo := &memConfigRepo{configs: []*phonenumber.Config{
		registeredConfig(t, "Kazakhstan", "+7", `^(\+7|8)7\d{9}$`),
		registeredConfig(t, "Vietnam", "+84", `^(\+84|84|0)[35789]\d{8}$`),
	}}
	handler := NewMatchPhoneHandler(phonenumber.NewMatcher(repo))

	result, err := handler.Handle(context.Background(), MatchPhoneQuery{
		PhoneNumber: "090 123 4567",
	})
	require.NoError(t, err)

	assert.True(t, result.Matched)
	require.NotNil(t, result.Config)
	assert.Equal(t, "Vietnam", result.Config.Country)
	assert.True(t, result.Validation.IsValid)
	assert.Equal(t, "0901234567", result.Validation.Normalized)
}

func TestMatchPhone_FallbackOnCallingCode(t *testing.T) {
	// The number carries the +84 prefix but is too short for the strict
	// pattern, so only the calling-code tier claims it.
	repo := &memConfigRepo{configs: []*phonenumber.Config{
		registeredConfig(t, "Vietnam", "+84", `^(\+84|84|0)[35789]\d{8}$`),
	}}
	handler := NewMatchPhoneHandler(phonenumber.NewMatcher(repo))

	result, err := handler.Handle(context.Background(), MatchPhoneQuery{
		PhoneNumber: "+84 123",
	})
	require.NoError(t, err)

	assert.True(t, result.Matched)
	require.NotNil(t, result.Config)
	assert.Equal(t, "Vietnam", result.Config.Country)
	assert.False(t, result.Validation.IsValid)
}

func TestMatchPhone_NoConfigClaims(t *testing.T) {
	repo := &memConfigRepo{configs: []*phonenumber.Config{
		registeredConfig(t, "Vietnam", "+84", `^(\+84|84|0)[35789]\d{8}$`),
	}}
	handler := NewMatchPhoneHandler(phonenumber.NewMatcher(repo))

	result, err := handler.Handle(context.Background(), MatchPhoneQuery{
		PhoneNumber: "+1 555 0100",
	})
	require.NoError(t, err)

	assert.False(t, result.Matched)
	assert.Nil(t, result.Config)
	assert.Equal(t, "+15550100", result.Validation.Normalized)
	assert.Contains(t, result.Validation.Message, "no country config")
}

func TestMatchPhone_RequiresNumber(t *testing.T) {
	handler := NewMatchPhoneHandler(phonenumber.NewMatcher(&memConfigRepo{}))

	_, err := handler.Handle(context.Background(), MatchPhoneQuery{})
	assert.Error(t, err)
}
