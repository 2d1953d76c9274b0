package entity

import "strings"

// Usos de ubicación.
const (
	LocationUsageSupplier   = "supplier"
	LocationUsageCustomer   = "customer"
	LocationUsageInternal   = "internal"
	LocationUsageTransit    = "transit"
	LocationUsageView       = "view"
	LocationUsageInventory  = "inventory"
	LocationUsageProduction = "production"
)

// Location es un nodo del árbol de ubicaciones. ParentPath sigue el formato
// "id1/id2/.../idN/" (incluye el propio ID) para resolver child_of sin recursión.
type Location struct {
	ID           string
	CompanyID    string
	Name         string
	CompleteName string
	Usage        string
	ParentID     string
	ParentPath   string
	WarehouseID  string
}

// IsChildOf indica si l es parent o descendiente de parent.
func (l *Location) IsChildOf(parent *Location) bool {
	if l == nil || parent == nil {
		return false
	}
	if l.ID == parent.ID {
		return true
	}
	if parent.ParentPath == "" || l.ParentPath == "" {
		return false
	}
	return strings.HasPrefix(l.ParentPath, parent.ParentPath)
}
