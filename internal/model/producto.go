package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is one stock-keeping unit of the inventory, identified by its
// immutable Codigo (barcode or SKU). Stock can never end up negative after a
// committed operation: the sale engine decrements it exclusively through a
// conditional UPDATE, and the table carries a CHECK (stock >= 0) as backstop.
type Producto struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Codigo    string          `gorm:"uniqueIndex;not null" json:"codigo"`
	Nombre    string          `gorm:"index;not null" json:"nombre"`
	Precio    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"precio"`
	Stock     int             `gorm:"not null;default:0" json:"stock"`
	Estante   *string         `json:"estante,omitempty"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

// TableName overrides GORM's default pluralization (productoes → productos).
func (Producto) TableName() string { return "productos" }
