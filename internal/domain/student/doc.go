// Package student contains the domain model of a university student record.
//
// This is the business-logic core of the records hub. The package defines:
//
//   - The Student aggregate root with its cross-field business rules
//     (age bounds, minimum study duration, graduation prerequisites)
//   - Value objects: Address, the IdentityDocument family (CMND old-format
//     card, CCCD new-format card, Passport)
//   - Repository and cache interfaces implemented in infrastructure
//
// # Architecture
//
// The package follows Clean Architecture and DDD:
//
//  1. Zero external dependencies - standard library only
//  2. Dependency inversion - interfaces here, implementations in infrastructure
//  3. Rich domain model - business rules live in the entities
//
// # Immutability
//
// Every entity is an immutable snapshot. Updates go through UpdateWith,
// which merges the change, re-runs full validation, and returns a new
// instance; the original is never modified:
//
//	s, err := student.New(student.Params{
//	    StudentID:      "22000123",
//	    Email:          "An.Nguyen@student.hcmus.edu.vn",
//	    FirstName:      "An",
//	    LastName:       "Nguyễn Văn",
//	    DateOfBirth:    dob,
//	    Gender:         student.GenderMale,
//	    PhoneNumber:    "0912345678",
//	    Address:        addr,
//	    Document:       doc,
//	    FacultyID:      facultyID,
//	    ProgramID:      programID,
//	    Status:         student.StatusActive,
//	    EnrollmentDate: enrolled,
//	})
//
//	updated, err := s.UpdateWith(student.Update{FirstName: &name})
//
// # Identity documents
//
// The three document kinds are variants behind the Document interface and
// are constructed only through the NewDocument factory, which dispatches
// on the type discriminator and applies both the shared base validation
// and the variant's number-format rule.
//
// # Serialization
//
// Snapshot/FromSnapshot round-trip an entity through a plain struct
// (including nested address and document) for the persistence layer.
// Derived fields in snapshots are informational; reconstruction
// recomputes them.
package student
