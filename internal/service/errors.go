package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors of the sale engine. Handlers translate these to HTTP status
// codes; nothing else crosses the service boundary.
var (
	// ErrVentaInvalida: malformed cart input, rejected before touching the store.
	ErrVentaInvalida = errors.New("venta invalida")
	// ErrCommitFallido: the atomic apply failed after validation passed.
	// The store was rolled back completely — safe to retry from scratch.
	ErrCommitFallido = errors.New("no se pudo completar la venta, intente nuevamente")
	// ErrAlmacenNoDisponible: the persistence layer is unreachable.
	ErrAlmacenNoDisponible = errors.New("almacen de datos no disponible")
)

// ErrProductoNoEncontrado carries the offending code so the UI can refresh
// its inventory view.
type ErrProductoNoEncontrado struct {
	Codigo string
}

func (e *ErrProductoNoEncontrado) Error() string {
	return fmt.Sprintf("producto con codigo %s no encontrado", e.Codigo)
}

// ErrStockInsuficiente reports available vs requested so the UI can prompt
// the cashier to reduce the quantity.
type ErrStockInsuficiente struct {
	Codigo     string
	Disponible int
	Solicitado int
}

func (e *ErrStockInsuficiente) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %s: disponible %d, solicitado %d",
		e.Codigo, e.Disponible, e.Solicitado)
}

// ErrPagoInsuficiente: cash tendered below the sale total.
type ErrPagoInsuficiente struct {
	Requerido decimal.Decimal
	Pagado    decimal.Decimal
}

func (e *ErrPagoInsuficiente) Error() string {
	return fmt.Sprintf("pago insuficiente: requerido %s, recibido %s",
		e.Requerido.StringFixed(2), e.Pagado.StringFixed(2))
}

// esErrorDeNegocio reports whether err is one of the typed engine errors that
// must surface verbatim to the caller instead of being wrapped as a commit
// failure.
func esErrorDeNegocio(err error) bool {
	var noEncontrado *ErrProductoNoEncontrado
	var sinStock *ErrStockInsuficiente
	var pagoCorto *ErrPagoInsuficiente
	return errors.Is(err, ErrVentaInvalida) ||
		errors.As(err, &noEncontrado) ||
		errors.As(err, &sinStock) ||
		errors.As(err, &pagoCorto)
}
