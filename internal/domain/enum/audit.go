package enum

// AuditAction is the kind of operation an audit record describes.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionLogin  AuditAction = "LOGIN"
	AuditActionLogout AuditAction = "LOGOUT"
)

// Audit modules
const (
	AuditModuleSales     = "sales"
	AuditModuleProducts  = "products"
	AuditModuleCustomers = "customers"
	AuditModuleInventory = "inventory"
	AuditModuleUsers     = "users"
)

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete, AuditActionLogin, AuditActionLogout:
		return true
	}
	return false
}
