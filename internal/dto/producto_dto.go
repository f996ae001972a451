package dto

import "github.com/shopspring/decimal"

// ─── Import ──────────────────────────────────────────────────────────────────

// ProductoImportRecord is one already-tabular row produced by the import
// collaborator (Excel/CSV parsing happens outside the engine). Records with a
// blank codigo are counted as omitidos, never an error — matching the
// historical bulk-import behavior.
type ProductoImportRecord struct {
	Codigo  string          `json:"codigo"`
	Nombre  string          `json:"nombre"  validate:"required"`
	Precio  decimal.Decimal `json:"precio"  validate:"min=0"`
	Stock   int             `json:"stock"   validate:"min=0"`
	Estante *string         `json:"estante"`
}

type ImportarInventarioRequest struct {
	Productos []ProductoImportRecord `json:"productos" validate:"required,min=1,dive"`
}

type ImportarInventarioResponse struct {
	Insertados int `json:"productos_insertados"`
	Omitidos   int `json:"productos_omitidos"`
}

// ─── Update ──────────────────────────────────────────────────────────────────

// ActualizarProductoRequest updates the mutable fields of a product. Codigo is
// immutable and comes from the URL, never the body.
type ActualizarProductoRequest struct {
	Nombre  string          `json:"nombre" validate:"required"`
	Precio  decimal.Decimal `json:"precio" validate:"min=0"`
	Stock   int             `json:"stock"  validate:"min=0"`
	Estante *string         `json:"estante"`
}

// ─── Price check ─────────────────────────────────────────────────────────────

type ConsultaPrecioResponse struct {
	Codigo  string          `json:"codigo"`
	Nombre  string          `json:"nombre"`
	Precio  decimal.Decimal `json:"precio"`
	Stock   int             `json:"stock"`
	Estante *string         `json:"estante,omitempty"`
}
