package student

import (
	"strings"

	"github.com/uni-hub/student-records-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADDRESS VALUE OBJECT
// ══════════════════════════════════════════════════════════════════════════════

// Address is an immutable postal address. Street, ward, district, and city
// are optional; country is required.
type Address struct {
	// Street is the street name and house number.
	Street string

	// Ward is the ward (phường/xã) within the district.
	Ward string

	// District is the district (quận/huyện) within the city.
	District string

	// City is the city or province.
	City string

	// Country is the country name. Always present on a valid Address.
	Country string
}

// NewAddress creates a validated Address. All components are trimmed;
// only country is mandatory.
func NewAddress(street, ward, district, city, country string) (Address, error) {
	a := Address{
		Street:   strings.TrimSpace(street),
		Ward:     strings.TrimSpace(ward),
		District: strings.TrimSpace(district),
		City:     strings.TrimSpace(city),
		Country:  strings.TrimSpace(country),
	}

	if err := shared.Required("Address", "country", a.Country); err != nil {
		return Address{}, err
	}
	if err := shared.MinLength("Address", "country", a.Country, 2); err != nil {
		return Address{}, err
	}

	return a, nil
}

// IsComplete reports whether both city and country are present.
func (a Address) IsComplete() bool {
	return a.City != "" && a.Country != ""
}

// FullAddress concatenates the non-empty components in fixed order:
// street, ward, district, city, country.
func (a Address) FullAddress() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.Ward, a.District, a.City, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Equals compares two addresses by value.
func (a Address) Equals(other Address) bool {
	return a == other
}

// AddressSnapshot is the plain serializable form of an Address.
// It includes the derived fields so persistence and presentation layers
// can use it verbatim.
type AddressSnapshot struct {
	Street      string `json:"street,omitempty"`
	Ward        string `json:"ward,omitempty"`
	District    string `json:"district,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country"`
	FullAddress string `json:"fullAddress"`
	IsComplete  bool   `json:"isComplete"`
}

// Snapshot returns the plain serializable form of the address.
func (a Address) Snapshot() AddressSnapshot {
	return AddressSnapshot{
		Street:      a.Street,
		Ward:        a.Ward,
		District:    a.District,
		City:        a.City,
		Country:     a.Country,
		FullAddress: a.FullAddress(),
		IsComplete:  a.IsComplete(),
	}
}

// AddressFromSnapshot reconstructs an Address from a previously serialized
// snapshot. Derived fields are recomputed, not trusted.
func AddressFromSnapshot(s AddressSnapshot) (Address, error) {
	return NewAddress(s.Street, s.Ward, s.District, s.City, s.Country)
}
