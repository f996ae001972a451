package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LineaVentaRequest is one cart line as the UI holds it. PrecioVisto is the
// price snapshot taken when the line was added; the engine re-prices from the
// store at commit time, so the snapshot is informational only (it lets the
// response flag stale carts).
type LineaVentaRequest struct {
	Codigo      string          `json:"codigo"       validate:"required"`
	Cantidad    int             `json:"cantidad"     validate:"required,min=1"`
	PrecioVisto decimal.Decimal `json:"precio_visto" validate:"min=0"`
}

type RegistrarVentaRequest struct {
	Lineas     []LineaVentaRequest `json:"lineas"      validate:"required,min=1,dive"`
	MetodoPago string              `json:"metodo_pago" validate:"required,oneof=efectivo tarjeta"`
	// PagoEfectivo is the cash tendered; only meaningful for metodo_pago=efectivo.
	PagoEfectivo decimal.Decimal `json:"pago_efectivo" validate:"min=0"`
	// Impresora, when present, enqueues the receipt for printing after commit.
	Impresora *string `json:"impresora" validate:"omitempty,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LineaVentaResponse struct {
	Codigo         string          `json:"codigo"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Monto          decimal.Decimal `json:"monto"`
}

// VentaResponse carries everything the receipt formatter needs.
type VentaResponse struct {
	Lineas     []LineaVentaResponse `json:"lineas"`
	Subtotal   decimal.Decimal      `json:"subtotal"`
	Total      decimal.Decimal      `json:"total"`
	Vuelto     decimal.Decimal      `json:"vuelto"`
	MetodoPago string               `json:"metodo_pago"`
	// PrecioCambiado is true when any line's stored price differed from the
	// cart snapshot — the UI may want to warn the cashier.
	PrecioCambiado bool   `json:"precio_cambiado"`
	Fecha          string `json:"fecha"` // RFC 3339, commit timestamp
}
