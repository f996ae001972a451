package service_test

import (
	"context"
	"sync"
	"time"

	"farmapos/internal/dto"
	"farmapos/internal/model"
	"farmapos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductoRepo is an in-memory ProductoRepository. The mutex matters:
// the concurrency tests hammer DescontarStockTx from multiple goroutines and
// the stub must reproduce the conditional-decrement guarantee of the real
// UPDATE … WHERE stock >= ? statement.
type stubProductoRepo struct {
	mu        sync.Mutex
	productos map[string]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[string]*model.Producto)}
}

func (r *stubProductoRepo) seed(codigo, nombre string, precio float64, stock int) *model.Producto {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := &model.Producto{
		ID:     uuid.New(),
		Codigo: codigo,
		Nombre: nombre,
		Precio: decimal.NewFromFloat(precio),
		Stock:  stock,
	}
	r.productos[codigo] = p
	return p
}

func (r *stubProductoRepo) List(_ context.Context) ([]model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	return r.find(codigo)
}

func (r *stubProductoRepo) find(codigo string) (*model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[codigo]
	if !ok {
		return nil, repository.ErrProductoNoExiste
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) Upsert(_ context.Context, productos []model.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range productos {
		p := productos[i]
		if existente, ok := r.productos[p.Codigo]; ok {
			p.ID = existente.ID
		}
		r.productos[p.Codigo] = &p
	}
	return nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existente, ok := r.productos[p.Codigo]
	if !ok {
		return repository.ErrProductoNoExiste
	}
	existente.Nombre = p.Nombre
	existente.Precio = p.Precio
	existente.Stock = p.Stock
	existente.Estante = p.Estante
	return nil
}

func (r *stubProductoRepo) DeleteByCodigo(_ context.Context, codigo string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.productos[codigo]; !ok {
		return repository.ErrProductoNoExiste
	}
	delete(r.productos, codigo)
	return nil
}

func (r *stubProductoRepo) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.productos = make(map[string]*model.Producto)
	return nil
}

func (r *stubProductoRepo) FindByCodigoTx(_ *gorm.DB, codigo string) (*model.Producto, error) {
	return r.find(codigo)
}

func (r *stubProductoRepo) DescontarStockTx(_ *gorm.DB, codigo string, cantidad int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[codigo]
	if !ok || p.Stock < cantidad {
		return false, nil
	}
	p.Stock -= cantidad
	return true, nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

func (r *stubProductoRepo) stockDe(codigo string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.productos[codigo]; ok {
		return p.Stock
	}
	return -1
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// stubVentaRepo is an in-memory append-only ledger.
type stubVentaRepo struct {
	mu       sync.Mutex
	entradas []model.Venta
	// nombres lets QueryRange fake the LEFT JOIN with productos.
	nombres map[string]string
	// failAppend, when set, makes AppendTx fail with this error.
	failAppend error
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{nombres: make(map[string]string)}
}

func (r *stubVentaRepo) AppendTx(_ *gorm.DB, entradas []model.Venta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAppend != nil {
		return r.failAppend
	}
	r.entradas = append(r.entradas, entradas...)
	return nil
}

func (r *stubVentaRepo) QueryRange(_ context.Context, desde, hasta time.Time) ([]dto.CorteEntrada, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dto.CorteEntrada
	for _, v := range r.entradas {
		if v.FechaHora.Before(desde) || v.FechaHora.After(hasta) {
			continue
		}
		out = append(out, dto.CorteEntrada{
			FechaHora:      v.FechaHora,
			CodigoProducto: v.CodigoProducto,
			NombreProducto: r.nombres[v.CodigoProducto],
			Cantidad:       v.Cantidad,
			Monto:          v.Monto,
		})
	}
	// newest first, like the real query
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

func (r *stubVentaRepo) todas() []model.Venta {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Venta(nil), r.entradas...)
}

var _ repository.VentaRepository = (*stubVentaRepo)(nil)
