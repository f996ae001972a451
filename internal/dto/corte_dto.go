package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CorteEntrada is one ledger row joined with the current product name.
// NombreProducto is empty when the product was deleted after the sale —
// the ledger is never enforced retroactively.
type CorteEntrada struct {
	FechaHora      time.Time       `json:"fecha_hora"      gorm:"column:fecha_hora"`
	CodigoProducto string          `json:"codigo_producto" gorm:"column:codigo_producto"`
	NombreProducto string          `json:"nombre"          gorm:"column:nombre"`
	Cantidad       int             `json:"cantidad"        gorm:"column:cantidad"`
	Monto          decimal.Decimal `json:"monto"           gorm:"column:monto"`
}

// ResumenPeriodoResponse is the derived period summary ("corte"). Not
// persisted — always recomputed from the ledger.
type ResumenPeriodoResponse struct {
	Periodo string          `json:"periodo"` // diario | semanal | mensual
	Desde   string          `json:"desde"`
	Hasta   string          `json:"hasta"`
	Ventas  []CorteEntrada  `json:"ventas"`
	Total   decimal.Decimal `json:"total"`
}

type GenerarCorteRequest struct {
	NombreNegocio string `json:"nombre_negocio" validate:"omitempty,min=1"`
}

type GenerarCorteResponse struct {
	PDFPath string `json:"pdf_path"`
}
