package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleManager
}

// Principal is the authenticated caller as asserted by the identity provider.
type Principal struct {
	UserID int
	Email  string
	Role   Role
}

func (p Principal) IsManager() bool {
	return p.Role == RoleManager
}

// CanAccess reports whether p may act on a resource owned by ownerID.
func (p Principal) CanAccess(ownerID int) bool {
	return p.IsManager() || p.UserID == ownerID
}
