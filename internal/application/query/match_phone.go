package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/uni-hub/student-records-hub/internal/domain/phonenumber"
	"github.com/uni-hub/student-records-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MATCH PHONE QUERY
// Finds the responsible country config for a phone number and validates
// the number against it.
// ══════════════════════════════════════════════════════════════════════════════

// MatchPhoneQuery contains the phone number to check.
type MatchPhoneQuery struct {
	PhoneNumber string
}

// Validate validates the query.
func (q MatchPhoneQuery) Validate() error {
	if q.PhoneNumber == "" {
		return errors.New("match_phone: phone_number must be provided")
	}
	return nil
}

// MatchPhoneResult is the matching outcome.
type MatchPhoneResult struct {
	// Matched reports whether any config claimed the number.
	Matched bool `json:"matched"`

	// Config is the claiming config's snapshot, nil when unmatched.
	Config *phonenumber.Snapshot `json:"config,omitempty"`

	// Validation is the structured check against the matched config.
	Validation phonenumber.ValidationResult `json:"validation"`
}

// MatchPhoneHandler handles the MatchPhoneQuery.
type MatchPhoneHandler struct {
	matcher *phonenumber.Matcher
}

// NewMatchPhoneHandler creates a new MatchPhoneHandler.
func NewMatchPhoneHandler(matcher *phonenumber.Matcher) *MatchPhoneHandler {
	return &MatchPhoneHandler{matcher: matcher}
}

// Handle executes the query. An unmatched number yields a negative
// result, not an error.
func (h *MatchPhoneHandler) Handle(ctx context.Context, q MatchPhoneQuery) (*MatchPhoneResult, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("match_phone: validation failed: %w", err)
	}

	config, err := h.matcher.BestMatch(ctx, q.PhoneNumber)
	if err != nil {
		if shared.IsNotFound(err) {
			return &MatchPhoneResult{
				Validation: phonenumber.ValidationResult{
					Normalized: phonenumber.NormalizeNumber(q.PhoneNumber),
					Message:    "no country config claims this number",
				},
			}, nil
		}
		return nil, fmt.Errorf("match_phone: lookup failed: %w", err)
	}

	snap := config.Snapshot()
	return &MatchPhoneResult{
		Matched:    true,
		Config:     &snap,
		Validation: config.ValidatePhoneNumber(q.PhoneNumber),
	}, nil
}
