package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/uni-hub/student-records-hub/internal/domain/emaildomain"
	"github.com/uni-hub/student-records-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALIDATE EMAIL QUERY
// Checks an arbitrary email address against the domain allow-list.
// ══════════════════════════════════════════════════════════════════════════════

// ValidateEmailQuery contains the email to check.
type ValidateEmailQuery struct {
	Email string
}

// Validate validates the query.
func (q ValidateEmailQuery) Validate() error {
	if q.Email == "" {
		return errors.New("validate_email: email must be provided")
	}
	return nil
}

// ValidateEmailResult is the allow-list check outcome.
type ValidateEmailResult struct {
	// IsAllowed reports whether the email's domain is registered.
	IsAllowed bool `json:"isAllowed"`

	// Domain is the extracted domain part, empty for malformed input.
	Domain string `json:"domain,omitempty"`

	// Matched is the registry entry that matched, nil otherwise.
	Matched *emaildomain.Snapshot `json:"matched,omitempty"`

	// Message explains negative outcomes.
	Message string `json:"message,omitempty"`
}

// ValidateEmailHandler handles the ValidateEmailQuery.
type ValidateEmailHandler struct {
	allowList *emaildomain.AllowList
}

// NewValidateEmailHandler creates a new ValidateEmailHandler.
func NewValidateEmailHandler(allowList *emaildomain.AllowList) *ValidateEmailHandler {
	return &ValidateEmailHandler{allowList: allowList}
}

// Handle executes the check. Malformed addresses and unregistered
// domains yield a negative result, not an error.
func (h *ValidateEmailHandler) Handle(ctx context.Context, q ValidateEmailQuery) (*ValidateEmailResult, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("validate_email: validation failed: %w", err)
	}

	domain, err := emaildomain.ExtractDomainFromEmail(q.Email)
	if err != nil {
		return &ValidateEmailResult{Message: "invalid email address format"}, nil
	}

	matched, err := h.allowList.Match(ctx, q.Email)
	if err != nil {
		if shared.IsNotFound(err) {
			return &ValidateEmailResult{
				Domain:  domain,
				Message: fmt.Sprintf("domain %s is not in the allow-list", domain),
			}, nil
		}
		return nil, fmt.Errorf("validate_email: lookup failed: %w", err)
	}

	snap := matched.Snapshot()
	return &ValidateEmailResult{
		IsAllowed: true,
		Domain:    domain,
		Matched:   &snap,
	}, nil
}
