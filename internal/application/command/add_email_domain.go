package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/uni-hub/student-records-hub/internal/domain/emaildomain"
	"github.com/uni-hub/student-records-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD EMAIL DOMAIN COMMAND
// Registers a domain in the allow-list used during student registration.
// ══════════════════════════════════════════════════════════════════════════════

// AddEmailDomainCommand contains the domain to register.
type AddEmailDomainCommand struct {
	Domain string
}

// Validate validates the command.
func (c AddEmailDomainCommand) Validate() error {
	if c.Domain == "" {
		return errors.New("add_email_domain: domain must be provided")
	}
	return nil
}

// RegistryCache invalidates cached registry listings after writes.
type RegistryCache interface {
	InvalidateRegistry(ctx context.Context, registry string) error
}

// AddEmailDomainHandler handles the AddEmailDomainCommand.
type AddEmailDomainHandler struct {
	domainRepo emaildomain.Repository
	cache      RegistryCache
}

// NewAddEmailDomainHandler creates a new AddEmailDomainHandler.
// The cache is optional and may be nil.
func NewAddEmailDomainHandler(domainRepo emaildomain.Repository, cache RegistryCache) *AddEmailDomainHandler {
	return &AddEmailDomainHandler{domainRepo: domainRepo, cache: cache}
}

// Handle executes the registration.
func (h *AddEmailDomainHandler) Handle(ctx context.Context, cmd AddEmailDomainCommand) (*emaildomain.EmailDomain, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("add_email_domain: validation failed: %w", err)
	}

	d, err := emaildomain.New(emaildomain.Params{
		ID:     uuid.NewString(),
		Domain: cmd.Domain,
	})
	if err != nil {
		return nil, err
	}

	if taken, err := h.domainRepo.ExistsByDomain(ctx, d.Domain); err != nil {
		return nil, fmt.Errorf("add_email_domain: uniqueness check failed: %w", err)
	} else if taken {
		return nil, shared.ErrEmailDomainAlreadyExists
	}

	if err := h.domainRepo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("add_email_domain: failed to save domain: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.InvalidateRegistry(ctx, "email_domains")
	}

	return d, nil
}
