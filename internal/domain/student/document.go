package student

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/uni-hub/student-records-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// IDENTITY DOCUMENT FAMILY
// One variant per document kind, all constructed through NewDocument.
// Callers never build a variant directly.
// ══════════════════════════════════════════════════════════════════════════════

// DocumentType discriminates the identity document variants.
type DocumentType string

const (
	// DocumentTypeCMND is the old-format national identity card.
	DocumentTypeCMND DocumentType = "CMND"
	// DocumentTypeCCCD is the new-format national identity card.
	DocumentTypeCCCD DocumentType = "CCCD"
	// DocumentTypePassport is a passport.
	DocumentTypePassport DocumentType = "PASSPORT"
)

// IsValid checks that the document type is one of the known variants.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeCMND, DocumentTypeCCCD, DocumentTypePassport:
		return true
	default:
		return false
	}
}

// Number format rules per variant.
var (
	cmndNumberRegex     = regexp.MustCompile(`^(\d{9}|\d{12})$`)
	cccdNumberRegex     = regexp.MustCompile(`^\d{12}$`)
	passportNumberRegex = regexp.MustCompile(`^[a-zA-Z0-9]{6,9}$`)
)

// Document is an immutable identity document owned by a Student.
type Document interface {
	// Type returns the variant discriminator.
	Type() DocumentType

	// Number returns the document number.
	Number() string

	// IssueDate returns when the document was issued.
	IssueDate() time.Time

	// IssuePlace returns where the document was issued.
	IssuePlace() string

	// ExpiryDate returns when the document expires.
	ExpiryDate() time.Time

	// IsValid reports whether the document has not yet expired.
	IsValid() bool

	// IsExpiringWithin reports whether the document expires within the
	// given number of days (and has not already expired).
	IsExpiringWithin(days int) bool

	// FormattedString renders a variant-specific human-readable label.
	FormattedString() string

	// Snapshot returns the plain serializable form of the document.
	Snapshot() DocumentSnapshot
}

// documentBase holds the fields common to every variant.
type documentBase struct {
	number     string
	issueDate  time.Time
	issuePlace string
	expiryDate time.Time
}

func (d documentBase) Number() string       { return d.number }
func (d documentBase) IssueDate() time.Time { return d.issueDate }
func (d documentBase) IssuePlace() string   { return d.issuePlace }
func (d documentBase) ExpiryDate() time.Time {
	return d.expiryDate
}

func (d documentBase) IsValid() bool {
	return d.expiryDate.After(time.Now())
}

func (d documentBase) IsExpiringWithin(days int) bool {
	now := time.Now()
	if !d.expiryDate.After(now) {
		return false
	}
	return !d.expiryDate.After(now.AddDate(0, 0, days))
}

// validate runs the base checks shared by all variants.
func (d documentBase) validate() error {
	if err := shared.Required("IdentityDocument", "document number", d.number); err != nil {
		return err
	}
	if err := shared.Required("IdentityDocument", "issue place", d.issuePlace); err != nil {
		return err
	}
	if err := shared.ValidPastDate("IdentityDocument", "issue date", d.issueDate); err != nil {
		return err
	}
	if d.expiryDate.IsZero() {
		return shared.NewValidationError("IdentityDocument", "expiry date is required")
	}
	if !d.expiryDate.After(d.issueDate) {
		return shared.NewValidationError("IdentityDocument", "expiry date must be after issue date")
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Variants
// ─────────────────────────────────────────────────────────────────────────────

// OldIDCard is the old-format national identity card (CMND).
// Its number is exactly 9 or 12 digits.
type OldIDCard struct {
	documentBase
}

// Type returns DocumentTypeCMND.
func (d OldIDCard) Type() DocumentType { return DocumentTypeCMND }

// FormattedString renders the CMND label.
func (d OldIDCard) FormattedString() string {
	return fmt.Sprintf("CMND: %s", d.number)
}

// NewIDCard is the new-format national identity card (CCCD).
// Its number is exactly 12 digits, and it may carry an embedded chip.
type NewIDCard struct {
	documentBase
	hasChip bool
}

// Type returns DocumentTypeCCCD.
func (d NewIDCard) Type() DocumentType { return DocumentTypeCCCD }

// HasChip reports whether the card carries an embedded chip.
func (d NewIDCard) HasChip() bool { return d.hasChip }

// FormattedString renders the CCCD label, noting the chip when present.
func (d NewIDCard) FormattedString() string {
	if d.hasChip {
		return fmt.Sprintf("CCCD (có chip): %s", d.number)
	}
	return fmt.Sprintf("CCCD: %s", d.number)
}

// Passport is a passport. Its number is 6-9 alphanumeric characters and it
// carries a required issuing country plus an optional free-text note.
type Passport struct {
	documentBase
	issuingCountry string
	note           string
}

// Type returns DocumentTypePassport.
func (d Passport) Type() DocumentType { return DocumentTypePassport }

// IssuingCountry returns the country that issued the passport.
func (d Passport) IssuingCountry() string { return d.issuingCountry }

// Note returns the optional free-text note.
func (d Passport) Note() string { return d.note }

// FormattedString renders the passport label with its issuing country.
func (d Passport) FormattedString() string {
	return fmt.Sprintf("Hộ chiếu: %s (%s)", d.number, d.issuingCountry)
}

// ─────────────────────────────────────────────────────────────────────────────
// Factory
// ─────────────────────────────────────────────────────────────────────────────

// DocumentParams bundles the inputs for NewDocument. HasChip applies only
// to CCCD; IssuingCountry and Note apply only to passports.
type DocumentParams struct {
	Type       DocumentType
	Number     string
	IssueDate  time.Time
	IssuePlace string
	ExpiryDate time.Time

	// CCCD only.
	HasChip bool

	// Passport only.
	IssuingCountry string
	Note           string
}

// NewDocument dispatches on the type discriminator to the correct variant
// constructor. All validation happens here; there is no partial or
// deferred validation.
func NewDocument(p DocumentParams) (Document, error) {
	base := documentBase{
		number:     strings.TrimSpace(p.Number),
		issueDate:  p.IssueDate,
		issuePlace: strings.TrimSpace(p.IssuePlace),
		expiryDate: p.ExpiryDate,
	}

	if err := base.validate(); err != nil {
		return nil, err
	}

	switch p.Type {
	case DocumentTypeCMND:
		if !cmndNumberRegex.MatchString(base.number) {
			return nil, shared.NewValidationError("IdentityDocument", "CMND number must be exactly 9 or 12 digits")
		}
		return OldIDCard{documentBase: base}, nil

	case DocumentTypeCCCD:
		if !cccdNumberRegex.MatchString(base.number) {
			return nil, shared.NewValidationError("IdentityDocument", "CCCD number must be exactly 12 digits")
		}
		return NewIDCard{documentBase: base, hasChip: p.HasChip}, nil

	case DocumentTypePassport:
		if !passportNumberRegex.MatchString(base.number) {
			return nil, shared.NewValidationError("IdentityDocument", "passport number must be 6-9 alphanumeric characters")
		}
		country := strings.TrimSpace(p.IssuingCountry)
		if err := shared.Required("IdentityDocument", "issuing country", country); err != nil {
			return nil, err
		}
		return Passport{
			documentBase:   base,
			issuingCountry: country,
			note:           strings.TrimSpace(p.Note),
		}, nil

	default:
		return nil, shared.NewValidationError("IdentityDocument", fmt.Sprintf("unknown document type: %q", string(p.Type)))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Serialization
// ─────────────────────────────────────────────────────────────────────────────

// DocumentSnapshot is the plain serializable form of a Document.
// Variant-only fields are omitted when they do not apply.
type DocumentSnapshot struct {
	Type       string    `json:"type"`
	Number     string    `json:"number"`
	IssueDate  time.Time `json:"issueDate"`
	IssuePlace string    `json:"issuePlace"`
	ExpiryDate time.Time `json:"expiryDate"`

	HasChip        *bool  `json:"hasChip,omitempty"`
	IssuingCountry string `json:"issuingCountry,omitempty"`
	Note           string `json:"note,omitempty"`

	// Derived.
	IsValid         bool   `json:"isValid"`
	FormattedString string `json:"formattedString"`
}

// Snapshot returns the plain serializable form of an OldIDCard.
func (d OldIDCard) Snapshot() DocumentSnapshot {
	return d.baseSnapshot(DocumentTypeCMND, d.FormattedString())
}

// Snapshot returns the plain serializable form of a NewIDCard.
func (d NewIDCard) Snapshot() DocumentSnapshot {
	s := d.baseSnapshot(DocumentTypeCCCD, d.FormattedString())
	hasChip := d.hasChip
	s.HasChip = &hasChip
	return s
}

// Snapshot returns the plain serializable form of a Passport.
func (d Passport) Snapshot() DocumentSnapshot {
	s := d.baseSnapshot(DocumentTypePassport, d.FormattedString())
	s.IssuingCountry = d.issuingCountry
	s.Note = d.note
	return s
}

func (d documentBase) baseSnapshot(t DocumentType, formatted string) DocumentSnapshot {
	return DocumentSnapshot{
		Type:            string(t),
		Number:          d.number,
		IssueDate:       d.issueDate,
		IssuePlace:      d.issuePlace,
		ExpiryDate:      d.expiryDate,
		IsValid:         d.IsValid(),
		FormattedString: formatted,
	}
}

// DocumentFromSnapshot reconstructs a Document from a previously serialized
// snapshot. Derived fields are recomputed, not trusted.
func DocumentFromSnapshot(s DocumentSnapshot) (Document, error) {
	p := DocumentParams{
		Type:           DocumentType(s.Type),
		Number:         s.Number,
		IssueDate:      s.IssueDate,
		IssuePlace:     s.IssuePlace,
		ExpiryDate:     s.ExpiryDate,
		IssuingCountry: s.IssuingCountry,
		Note:           s.Note,
	}
	if s.HasChip != nil {
		p.HasChip = *s.HasChip
	}
	return NewDocument(p)
}
