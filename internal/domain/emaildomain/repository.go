package emaildomain

import "context"

// Repository defines the storage contract for the email-domain registry.
// Domain strings are stored normalized; uniqueness is arbitrated by the
// storage layer.
type Repository interface {
	// Create stores a new registry entry.
	// Returns ErrEmailDomainAlreadyExists when the domain is taken.
	Create(ctx context.Context, d *EmailDomain) error

	// GetByID returns an entry by opaque ID.
	// Returns ErrEmailDomainNotFound when missing.
	GetByID(ctx context.Context, id string) (*EmailDomain, error)

	// GetByDomain returns an entry by its normalized domain string.
	GetByDomain(ctx context.Context, domain string) (*EmailDomain, error)

	// Delete removes an entry.
	Delete(ctx context.Context, id string) error

	// GetAll returns all registered domains.
	GetAll(ctx context.Context) ([]*EmailDomain, error)

	// ExistsByDomain checks existence by normalized domain string.
	ExistsByDomain(ctx context.Context, domain string) (bool, error)
}
