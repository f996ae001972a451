package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Venta is one row of the sales ledger: one unit-line sold, one row. A sale
// with N cart lines appends N rows sharing a single commit timestamp.
//
// Rows are append-only. The engine never updates or deletes them; corrections
// are outside the core. Monto is precio vigente × cantidad, pre-surcharge:
// the card surcharge applies to the sale total, not to the ledger allocation.
type Venta struct {
	ID             uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	FechaHora      time.Time       `gorm:"index;not null" json:"fecha_hora"`
	CodigoProducto string          `gorm:"not null;index" json:"codigo_producto"`
	Cantidad       int             `gorm:"not null" json:"cantidad"`
	Monto          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"monto"`
}

// TableName keeps the historical table name of the original database.
func (Venta) TableName() string { return "ventas" }
