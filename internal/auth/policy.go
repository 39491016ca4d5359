package auth

import "rental_system/internal/domain" // Importing domain models

// Op names an operation the authorization policy rules on
type Op string

// Operations checked by handlers and middleware
const (
	OpUserAdmin            Op = "user:admin"              // Admin CRUD over any user
	OpCarRead              Op = "car:read"                // Browse the car catalog
	OpCarWrite             Op = "car:write"               // Create/update/delete cars
	OpRentalCreate         Op = "rental:create"           // Book a rental
	OpRentalRead           Op = "rental:read"             // List/retrieve rentals (scoped elsewhere)
	OpRentalWrite          Op = "rental:write"            // Update/delete rentals
	OpRentalStatusOverride Op = "rental:status-override"  // Overwrite a rental's status
)

// Allow is the single authorization decision point: it reports whether the
// caller may perform op. A nil caller is an unauthenticated request.
func Allow(caller *domain.User, op Op) bool {
	switch op {
	case OpCarRead:
		return true // Catalog reads are open to anyone
	case OpRentalCreate, OpRentalRead:
		return caller != nil // Any authenticated user
	case OpUserAdmin, OpCarWrite, OpRentalWrite, OpRentalStatusOverride:
		return caller != nil && caller.IsStaff // Staff only
	}
	return false // Unknown operations are denied
}
