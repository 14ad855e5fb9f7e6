package enum

// MovementType classifies an inventory ledger entry.
type MovementType string

const (
	MovementTypePurchase   MovementType = "purchase"
	MovementTypeSale       MovementType = "sale"
	MovementTypeAdjustment MovementType = "adjustment"
	MovementTypeReturn     MovementType = "return"
	MovementTypeDamage     MovementType = "damage"
	MovementTypeTransfer   MovementType = "transfer"
)
