package enum

// UserRole is the staff role carried in access tokens.
type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleManager   UserRole = "manager"
	UserRoleCashier   UserRole = "cashier"
	UserRoleWarehouse UserRole = "warehouse"
	UserRolePromoter  UserRole = "promoter"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleManager, UserRoleCashier, UserRoleWarehouse, UserRolePromoter:
		return true
	}
	return false
}
