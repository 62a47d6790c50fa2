package phonenumber

import "context"

// Repository defines the storage contract for phone-number configs.
// Country uniqueness is arbitrated by the storage layer. GetAll returns
// configs in a stable order so that best-match iteration is
// deterministic.
type Repository interface {
	// Create stores a new config.
	// Returns ErrPhoneConfigAlreadyExists when the country is taken.
	Create(ctx context.Context, c *Config) error

	// GetByID returns a config by opaque ID.
	// Returns ErrPhoneConfigNotFound when missing.
	GetByID(ctx context.Context, id string) (*Config, error)

	// GetByCountry returns a config by country name.
	GetByCountry(ctx context.Context, country string) (*Config, error)

	// Update replaces the stored state of a config.
	Update(ctx context.Context, c *Config) error

	// Delete removes a config.
	Delete(ctx context.Context, id string) error

	// GetAll returns all configs ordered by country name.
	GetAll(ctx context.Context) ([]*Config, error)

	// ExistsByCountry checks existence by country name.
	ExistsByCountry(ctx context.Context, country string) (bool, error)
}
