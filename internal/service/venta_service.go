package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"farmapos/internal/dto"
	"farmapos/internal/model"
	"farmapos/internal/repository"
	"farmapos/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VentaService is the sale-transaction engine: it validates a cart against
// current stock, computes totals (including the card surcharge), and commits
// the stock decrement plus the ledger append as one atomic unit.
type VentaService interface {
	RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
}

type ventaService struct {
	productoRepo repository.ProductoRepository
	ventaRepo    repository.VentaRepository
	// recargoTarjeta is the configured card surcharge in percent (e.g. 5).
	recargoTarjeta decimal.Decimal
	dispatcher     *worker.Dispatcher
	rdb            *redis.Client
	// now is swappable in tests; defaults to time.Now.
	now func() time.Time
}

func NewVentaService(
	productoRepo repository.ProductoRepository,
	ventaRepo repository.VentaRepository,
	recargoTarjetaPct float64,
	dispatcher *worker.Dispatcher,
	rdb *redis.Client,
) VentaService {
	return &ventaService{
		productoRepo:   productoRepo,
		ventaRepo:      ventaRepo,
		recargoTarjeta: decimal.NewFromFloat(recargoTarjetaPct),
		dispatcher:     dispatcher,
		rdb:            rdb,
		now:            time.Now,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// All-or-nothing commit of a sale:
//   1. Pre-store validation of the cart shape (no store access on failure)
//   2. Inside ONE transaction:
//      a. per line: fetch product, check stock, re-price from the stored precio
//      b. subtotal, card surcharge, cash sufficiency, vuelto
//      c. per line: conditional stock decrement (UPDATE … WHERE stock >= ?)
//      d. append one ledger row per line, all sharing one commit timestamp
//   3. On any error the transaction rolls back — no partial sale is ever visible
//   4. After commit: invalidate the price cache and enqueue the receipt print job

func (s *ventaService) RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	if err := validarCarrito(req); err != nil {
		return nil, err
	}

	var resp *dto.VentaResponse
	txErr := runTx(ctx, s.ventaRepo.DB(), func(tx *gorm.DB) error {
		var err error
		resp, err = s.commitVenta(tx, req)
		return err
	})
	if txErr != nil {
		if esErrorDeNegocio(txErr) {
			return nil, txErr
		}
		// Storage-level failure after validation passed. Everything was rolled
		// back; the caller may retry from a fresh read. The underlying detail
		// stays in the log — clients only ever see the sentinel's message.
		log.Error().Err(txErr).Msg("venta: commit fallido")
		return nil, ErrCommitFallido
	}

	s.postCommit(ctx, req, resp)
	return resp, nil
}

// validarCarrito rejects malformed input before the store is touched.
func validarCarrito(req dto.RegistrarVentaRequest) error {
	if len(req.Lineas) == 0 {
		return fmt.Errorf("%w: el carrito esta vacio", ErrVentaInvalida)
	}
	for _, l := range req.Lineas {
		if strings.TrimSpace(l.Codigo) == "" {
			return fmt.Errorf("%w: codigo de producto vacio", ErrVentaInvalida)
		}
		if l.Cantidad < 1 {
			return fmt.Errorf("%w: cantidad invalida %d para %s", ErrVentaInvalida, l.Cantidad, l.Codigo)
		}
	}
	if req.MetodoPago != "efectivo" && req.MetodoPago != "tarjeta" {
		return fmt.Errorf("%w: metodo de pago desconocido %q", ErrVentaInvalida, req.MetodoPago)
	}
	return nil
}

// commitVenta runs inside the transaction. Reads, pricing and the conditional
// decrements all see the same transactional snapshot, so the check-then-act
// race of the old separate read/write calls cannot happen here.
func (s *ventaService) commitVenta(tx *gorm.DB, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	type lineaResuelta struct {
		codigo   string
		nombre   string
		cantidad int
		precio   decimal.Decimal
		monto    decimal.Decimal
	}

	resueltas := make([]lineaResuelta, 0, len(req.Lineas))
	subtotal := decimal.Zero
	precioCambiado := false

	for _, l := range req.Lineas {
		codigo := strings.TrimSpace(l.Codigo)
		p, err := s.productoRepo.FindByCodigoTx(tx, codigo)
		if err != nil {
			if errors.Is(err, repository.ErrProductoNoExiste) {
				return nil, &ErrProductoNoEncontrado{Codigo: codigo}
			}
			return nil, fmt.Errorf("leyendo producto %s: %w", codigo, err)
		}
		if p.Stock < l.Cantidad {
			return nil, &ErrStockInsuficiente{Codigo: codigo, Disponible: p.Stock, Solicitado: l.Cantidad}
		}
		// Re-pricing is mandatory: the stored precio wins over the cart's
		// stale snapshot.
		if !p.Precio.Equal(l.PrecioVisto) {
			precioCambiado = true
		}
		monto := p.Precio.Mul(decimal.NewFromInt(int64(l.Cantidad)))
		subtotal = subtotal.Add(monto)
		resueltas = append(resueltas, lineaResuelta{
			codigo:   codigo,
			nombre:   p.Nombre,
			cantidad: l.Cantidad,
			precio:   p.Precio,
			monto:    monto,
		})
	}

	total := subtotal
	if req.MetodoPago == "tarjeta" {
		factor := decimal.NewFromInt(1).Add(s.recargoTarjeta.Div(decimal.NewFromInt(100)))
		total = subtotal.Mul(factor).Round(2)
	}

	vuelto := decimal.Zero
	if req.MetodoPago == "efectivo" {
		if req.PagoEfectivo.LessThan(total) {
			return nil, &ErrPagoInsuficiente{Requerido: total, Pagado: req.PagoEfectivo}
		}
		vuelto = req.PagoEfectivo.Sub(total)
	}

	// Apply phase. The conditional decrement re-checks stock at write time:
	// a concurrent sale that won the race makes the guard fail and the whole
	// transaction aborts, so stock can never go negative.
	for _, r := range resueltas {
		aplicado, err := s.productoRepo.DescontarStockTx(tx, r.codigo, r.cantidad)
		if err != nil {
			return nil, fmt.Errorf("descontando stock de %s: %w", r.codigo, err)
		}
		if !aplicado {
			disponible := 0
			if p, ferr := s.productoRepo.FindByCodigoTx(tx, r.codigo); ferr == nil {
				disponible = p.Stock
			}
			return nil, &ErrStockInsuficiente{Codigo: r.codigo, Disponible: disponible, Solicitado: r.cantidad}
		}
	}

	// One commit timestamp shared by every row of this sale.
	fecha := s.now()
	entradas := make([]model.Venta, 0, len(resueltas))
	for _, r := range resueltas {
		entradas = append(entradas, model.Venta{
			FechaHora:      fecha,
			CodigoProducto: r.codigo,
			Cantidad:       r.cantidad,
			Monto:          r.monto, // pre-surcharge ledger semantics
		})
	}
	if err := s.ventaRepo.AppendTx(tx, entradas); err != nil {
		return nil, fmt.Errorf("registrando ventas en libro: %w", err)
	}

	lineas := make([]dto.LineaVentaResponse, 0, len(resueltas))
	for _, r := range resueltas {
		lineas = append(lineas, dto.LineaVentaResponse{
			Codigo:         r.codigo,
			Nombre:         r.nombre,
			Cantidad:       r.cantidad,
			PrecioUnitario: r.precio,
			Monto:          r.monto,
		})
	}
	return &dto.VentaResponse{
		Lineas:         lineas,
		Subtotal:       subtotal,
		Total:          total,
		Vuelto:         vuelto,
		MetodoPago:     req.MetodoPago,
		PrecioCambiado: precioCambiado,
		Fecha:          fecha.Format(time.RFC3339),
	}, nil
}

// postCommit runs strictly after the transaction succeeded. Printing and cache
// maintenance are best-effort and never gate the commit.
func (s *ventaService) postCommit(ctx context.Context, req dto.RegistrarVentaRequest, resp *dto.VentaResponse) {
	if s.rdb != nil {
		keys := make([]string, 0, len(resp.Lineas))
		for _, l := range resp.Lineas {
			keys = append(keys, "precio:"+l.Codigo)
		}
		if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
			log.Warn().Err(err).Msg("venta: no se pudo invalidar cache de precios")
		}
	}

	if s.dispatcher != nil && req.Impresora != nil && *req.Impresora != "" {
		job := worker.TicketJob{Venta: *resp, Impresora: *req.Impresora}
		if err := s.dispatcher.EnqueueImpresion(ctx, job); err != nil {
			log.Warn().Err(err).Str("impresora", *req.Impresora).Msg("venta: no se pudo encolar la impresion")
		}
	}
}
