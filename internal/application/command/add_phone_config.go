package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/uni-hub/student-records-hub/internal/domain/phonenumber"
	"github.com/uni-hub/student-records-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD PHONE CONFIG COMMAND
// Registers a per-country phone validation config. Pattern auto-repair
// runs inside the entity constructor; the handler logs when it fired.
// ══════════════════════════════════════════════════════════════════════════════

// AddPhoneConfigCommand contains the config to register.
type AddPhoneConfigCommand struct {
	Country     string
	CountryCode string
	Pattern     string
}

// Validate validates the command.
func (c AddPhoneConfigCommand) Validate() error {
	if c.Country == "" {
		return errors.New("add_phone_config: country must be provided")
	}
	if c.Pattern == "" {
		return errors.New("add_phone_config: pattern must be provided")
	}
	return nil
}

// AddPhoneConfigHandler handles the AddPhoneConfigCommand.
type AddPhoneConfigHandler struct {
	configRepo phonenumber.Repository
	cache      RegistryCache
	logger     *slog.Logger
}

// NewAddPhoneConfigHandler creates a new AddPhoneConfigHandler.
// The cache is optional and may be nil.
func NewAddPhoneConfigHandler(configRepo phonenumber.Repository, cache RegistryCache, logger *slog.Logger) *AddPhoneConfigHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AddPhoneConfigHandler{configRepo: configRepo, cache: cache, logger: logger}
}

// Handle executes the registration.
func (h *AddPhoneConfigHandler) Handle(ctx context.Context, cmd AddPhoneConfigCommand) (*phonenumber.Config, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("add_phone_config: validation failed: %w", err)
	}

	c, err := phonenumber.New(phonenumber.Params{
		ID:          uuid.NewString(),
		Country:     cmd.Country,
		CountryCode: cmd.CountryCode,
		Pattern:     cmd.Pattern,
	})
	if err != nil {
		return nil, err
	}

	if c.PatternRepaired {
		h.logger.WarnContext(ctx, "phone pattern auto-repaired",
			"country", c.Country,
			"input_pattern", cmd.Pattern,
			"repaired_pattern", c.Pattern,
		)
	}

	if taken, err := h.configRepo.ExistsByCountry(ctx, c.Country); err != nil {
		return nil, fmt.Errorf("add_phone_config: uniqueness check failed: %w", err)
	} else if taken {
		return nil, shared.ErrPhoneConfigAlreadyExists
	}

	if err := h.configRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("add_phone_config: failed to save config: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.InvalidateRegistry(ctx, "phone_configs")
	}

	return c, nil
}
