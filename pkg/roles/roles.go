package roles

// Role is an employee account role
type Role string

const (
	Cashier Role = "cashier"
	Manager Role = "manager"
	Admin   Role = "admin"
)

// HierarchyLevel orders roles by privilege
type HierarchyLevel int

const (
	CashierLevel HierarchyLevel = 1
	ManagerLevel HierarchyLevel = 2
	AdminLevel   HierarchyLevel = 3
)

func (r Role) GetHierarchyLevel() HierarchyLevel {
	switch r {
	case Cashier:
		return CashierLevel
	case Manager:
		return ManagerLevel
	case Admin:
		return AdminLevel
	default:
		return CashierLevel
	}
}

func (r Role) HasPermission(requiredRole Role) bool {
	return r.GetHierarchyLevel() >= requiredRole.GetHierarchyLevel()
}

func (r Role) IsValid() bool {
	switch r {
	case Cashier, Manager, Admin:
		return true
	default:
		return false
	}
}

// UsesPasscode reports whether the role signs in with a numeric passcode instead of a username and password.
func (r Role) UsesPasscode() bool {
	return r == Cashier
}

func (r Role) String() string {
	return string(r)
}

func All() []string {
	return []string{Admin.String(), Manager.String(), Cashier.String()}
}
