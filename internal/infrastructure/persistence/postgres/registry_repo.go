package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/uni-hub/student-records-hub/internal/domain/emaildomain"
	"github.com/uni-hub/student-records-hub/internal/domain/phonenumber"
	"github.com/uni-hub/student-records-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// EMAIL DOMAIN REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// EmailDomainRepository implements emaildomain.Repository for PostgreSQL.
type EmailDomainRepository struct {
	conn *Connection
}

// NewEmailDomainRepository creates a new EmailDomainRepository.
func NewEmailDomainRepository(conn *Connection) *EmailDomainRepository {
	return &EmailDomainRepository{conn: conn}
}

// Create stores a new registry entry.
func (r *EmailDomainRepository) Create(ctx context.Context, d *emaildomain.EmailDomain) error {
	query := `
		INSERT INTO email_domains (id, domain, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.conn.Exec(ctx, query, d.ID, d.Domain, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrEmailDomainAlreadyExists
		}
		return fmt.Errorf("failed to create email domain: %w", err)
	}

	return nil
}

// GetByID returns an entry by internal ID.
func (r *EmailDomainRepository) GetByID(ctx context.Context, id string) (*emaildomain.EmailDomain, error) {
	query := `SELECT id, domain, created_at, updated_at FROM email_domains WHERE id = $1`
	return r.scanDomain(r.conn.QueryRow(ctx, query, id))
}

// GetByDomain returns an entry by its normalized domain string.
func (r *EmailDomainRepository) GetByDomain(ctx context.Context, domain string) (*emaildomain.EmailDomain, error) {
	query := `SELECT id, domain, created_at, updated_at FROM email_domains WHERE domain = $1`
	return r.scanDomain(r.conn.QueryRow(ctx, query, emaildomain.Normalize(domain)))
}

// Delete removes an entry.
func (r *EmailDomainRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM email_domains WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete email domain: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrEmailDomainNotFound
	}
	return nil
}

// GetAll returns all registered domains ordered by domain string.
func (r *EmailDomainRepository) GetAll(ctx context.Context) ([]*emaildomain.EmailDomain, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT id, domain, created_at, updated_at FROM email_domains ORDER BY domain`)
	if err != nil {
		return nil, fmt.Errorf("failed to query email domains: %w", err)
	}
	defer rows.Close()

	var domains []*emaildomain.EmailDomain
	for rows.Next() {
		d, err := r.scanDomain(rows)
		if err != nil {
			return nil, err
		}
		domains = append(domains, d)
	}

	return domains, rows.Err()
}

// ExistsByDomain checks existence by normalized domain string.
func (r *EmailDomainRepository) ExistsByDomain(ctx context.Context, domain string) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM email_domains WHERE domain = $1)`,
		emaildomain.Normalize(domain)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email domain existence: %w", err)
	}
	return exists, nil
}

func (r *EmailDomainRepository) scanDomain(row pgx.Row) (*emaildomain.EmailDomain, error) {
	var snap emaildomain.Snapshot

	err := row.Scan(&snap.ID, &snap.Domain, &snap.CreatedAt, &snap.UpdatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrEmailDomainNotFound
		}
		return nil, fmt.Errorf("failed to scan email domain: %w", err)
	}

	// Stored rows may predate the current hostname grammar.
	d, err := emaildomain.ReconstructLegacy(snap)
	if err != nil {
		return nil, fmt.Errorf("stored email domain %s fails reconstruction: %w", snap.ID, err)
	}
	return d, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// PHONE CONFIG REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// PhoneConfigRepository implements phonenumber.Repository for PostgreSQL.
// Rows are rebuilt through the legacy path so a stored pattern that no
// longer compiles still loads, with validation degraded per entity
// contract.
type PhoneConfigRepository struct {
	conn *Connection
}

// NewPhoneConfigRepository creates a new PhoneConfigRepository.
func NewPhoneConfigRepository(conn *Connection) *PhoneConfigRepository {
	return &PhoneConfigRepository{conn: conn}
}

// Create stores a new config.
func (r *PhoneConfigRepository) Create(ctx context.Context, c *phonenumber.Config) error {
	query := `
		INSERT INTO phone_configs (id, country, country_code, pattern, pattern_repaired, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.conn.Exec(ctx, query,
		c.ID, c.Country, c.CountryCode, c.Pattern, c.PatternRepaired, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrPhoneConfigAlreadyExists
		}
		return fmt.Errorf("failed to create phone config: %w", err)
	}

	return nil
}

// GetByID returns a config by internal ID.
func (r *PhoneConfigRepository) GetByID(ctx context.Context, id string) (*phonenumber.Config, error) {
	query := `SELECT id, country, country_code, pattern, pattern_repaired, created_at, updated_at
		FROM phone_configs WHERE id = $1`
	return r.scanConfig(r.conn.QueryRow(ctx, query, id))
}

// GetByCountry returns a config by country name.
func (r *PhoneConfigRepository) GetByCountry(ctx context.Context, country string) (*phonenumber.Config, error) {
	query := `SELECT id, country, country_code, pattern, pattern_repaired, created_at, updated_at
		FROM phone_configs WHERE LOWER(country) = LOWER($1)`
	return r.scanConfig(r.conn.QueryRow(ctx, query, country))
}

// Update replaces the stored state of a config.
func (r *PhoneConfigRepository) Update(ctx context.Context, c *phonenumber.Config) error {
	query := `
		UPDATE phone_configs SET
			country = $2, country_code = $3, pattern = $4, pattern_repaired = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := r.conn.Exec(ctx, query,
		c.ID, c.Country, c.CountryCode, c.Pattern, c.PatternRepaired, c.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrPhoneConfigAlreadyExists
		}
		return fmt.Errorf("failed to update phone config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrPhoneConfigNotFound
	}

	return nil
}

// Delete removes a config.
func (r *PhoneConfigRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM phone_configs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete phone config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrPhoneConfigNotFound
	}
	return nil
}

// GetAll returns all configs ordered by country name, the stable order
// the best-match search iterates in.
func (r *PhoneConfigRepository) GetAll(ctx context.Context) ([]*phonenumber.Config, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT id, country, country_code, pattern, pattern_repaired, created_at, updated_at
		FROM phone_configs ORDER BY country`)
	if err != nil {
		return nil, fmt.Errorf("failed to query phone configs: %w", err)
	}
	defer rows.Close()

	var configs []*phonenumber.Config
	for rows.Next() {
		c, err := r.scanConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}

	return configs, rows.Err()
}

// ExistsByCountry checks existence by country name.
func (r *PhoneConfigRepository) ExistsByCountry(ctx context.Context, country string) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM phone_configs WHERE LOWER(country) = LOWER($1))`, country).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check phone config existence: %w", err)
	}
	return exists, nil
}

func (r *PhoneConfigRepository) scanConfig(row pgx.Row) (*phonenumber.Config, error) {
	var snap phonenumber.Snapshot

	err := row.Scan(
		&snap.ID,
		&snap.Country,
		&snap.CountryCode,
		&snap.Pattern,
		&snap.PatternRepaired,
		&snap.CreatedAt,
		&snap.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrPhoneConfigNotFound
		}
		return nil, fmt.Errorf("failed to scan phone config: %w", err)
	}

	c, err := phonenumber.ReconstructLegacy(snap)
	if err != nil {
		return nil, fmt.Errorf("stored phone config %s fails reconstruction: %w", snap.ID, err)
	}
	return c, nil
}
