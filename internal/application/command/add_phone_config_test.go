package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uni-hub/student-records-hub/internal/domain/shared"
)

func TestAddPhoneConfig_Succeeds(t *testing.T) {
	repo := &fakeConfigRepo{}
	cache := &fakeRegistryCache{}
	handler := NewAddPhoneConfigHandler(repo, cache, nil)

	c, err := handler.Handle(context.Background(), AddPhoneConfigCommand{
		Country:     "Vietnam",
		CountryCode: "+84",
		Pattern:     `^(\+84|84|0)[35789]\d{8}$`,
	})
	require.NoError(t, err)

	assert.False(t, c.PatternRepaired)
	assert.True(t, c.ValidatePhoneNumber("0901234567").IsValid)
	assert.Equal(t, []string{"phone_configs"}, cache.invalidated)
}

func TestAddPhoneConfig_RepairsLegacyPattern(t *testing.T) {
	handler := NewAddPhoneConfigHandler(&fakeConfigRepo{}, nil, nil)

	c, err := handler.Handle(context.Background(), AddPhoneConfigCommand{
		Country:     "Vietnam",
		CountryCode: "+84",
		Pattern:     `^(+84|84|0)[35789]d{8}$`,
	})
	require.NoError(t, err)

	assert.True(t, c.PatternRepaired)
	assert.Equal(t, `^(\+84|84|0)[35789]\d{8}$`, c.Pattern)
}

func TestAddPhoneConfig_RejectsTakenCountry(t *testing.T) {
	repo := &fakeConfigRepo{}
	handler := NewAddPhoneConfigHandler(repo, nil, nil)

	first := AddPhoneConfigCommand{
		Country:     "Vietnam",
		CountryCode: "+84",
		Pattern:     `^0\d{9}$`,
	}
	_, err := handler.Handle(context.Background(), first)
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), first)
	assert.ErrorIs(t, err, shared.ErrPhoneConfigAlreadyExists)
}

func TestAddPhoneConfig_RejectsUnrepairablePattern(t *testing.T) {
	handler := NewAddPhoneConfigHandler(&fakeConfigRepo{}, nil, nil)

	_, err := handler.Handle(context.Background(), AddPhoneConfigCommand{
		Country:     "Broken",
		CountryCode: "+1",
		Pattern:     "(",
	})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}
