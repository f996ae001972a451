package service_test

// Transaction semantics against a real database: the stubs above cannot prove
// rollback behavior, so these tests run the engine on an in-memory SQLite
// instance with the production repositories.

import (
	"context"
	"fmt"
	"testing"
	"time"

	"farmapos/internal/dto"
	"farmapos/internal/model"
	"farmapos/internal/repository"
	"farmapos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func abrirDBPrueba(t *testing.T) *gorm.DB {
	t.Helper()
	// A named in-memory database per test keeps them isolated.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Producto{}, &model.Venta{}))
	return db
}

func sembrarProducto(t *testing.T, db *gorm.DB, codigo, nombre string, precio float64, stock int) {
	t.Helper()
	require.NoError(t, db.Create(&model.Producto{
		ID:     uuid.New(),
		Codigo: codigo,
		Nombre: nombre,
		Precio: decimal.NewFromFloat(precio),
		Stock:  stock,
	}).Error)
}

func TestTransaccion_RollbackCompleto(t *testing.T) {
	db := abrirDBPrueba(t)
	sembrarProducto(t, db, "750100000001", "Paracetamol 500mg", 10, 5)
	sembrarProducto(t, db, "750100000002", "Ibuprofeno 400mg", 8, 1)

	svc := service.NewVentaService(
		repository.NewProductoRepository(db),
		repository.NewVentaRepository(db),
		5.0, nil, nil,
	)

	// Line 1 is satisfiable, line 2 is not: the whole sale must roll back.
	_, err := svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Lineas: []dto.LineaVentaRequest{
			{Codigo: "750100000001", Cantidad: 2, PrecioVisto: decimal.NewFromFloat(10)},
			{Codigo: "750100000002", Cantidad: 3, PrecioVisto: decimal.NewFromFloat(8)},
		},
		MetodoPago:   "efectivo",
		PagoEfectivo: decimal.NewFromFloat(100),
	})

	var sinStock *service.ErrStockInsuficiente
	require.ErrorAs(t, err, &sinStock)
	assert.Equal(t, "750100000002", sinStock.Codigo)

	// No partial decrement survived the rollback
	var p1, p2 model.Producto
	require.NoError(t, db.Where("codigo = ?", "750100000001").First(&p1).Error)
	require.NoError(t, db.Where("codigo = ?", "750100000002").First(&p2).Error)
	assert.Equal(t, 5, p1.Stock)
	assert.Equal(t, 1, p2.Stock)

	var ledger int64
	require.NoError(t, db.Model(&model.Venta{}).Count(&ledger).Error)
	assert.Zero(t, ledger)
}

func TestTransaccion_CommitMultilinea(t *testing.T) {
	db := abrirDBPrueba(t)
	sembrarProducto(t, db, "750100000001", "Paracetamol 500mg", 10, 5)
	sembrarProducto(t, db, "750100000002", "Ibuprofeno 400mg", 8, 3)

	svc := service.NewVentaService(
		repository.NewProductoRepository(db),
		repository.NewVentaRepository(db),
		5.0, nil, nil,
	)

	resp, err := svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Lineas: []dto.LineaVentaRequest{
			{Codigo: "750100000001", Cantidad: 2, PrecioVisto: decimal.NewFromFloat(10)},
			{Codigo: "750100000002", Cantidad: 1, PrecioVisto: decimal.NewFromFloat(8)},
		},
		MetodoPago:   "efectivo",
		PagoEfectivo: decimal.NewFromFloat(30),
	})
	require.NoError(t, err)
	assert.Equal(t, "28", resp.Total.String())
	assert.Equal(t, "2", resp.Vuelto.String())

	var p1, p2 model.Producto
	require.NoError(t, db.Where("codigo = ?", "750100000001").First(&p1).Error)
	require.NoError(t, db.Where("codigo = ?", "750100000002").First(&p2).Error)
	assert.Equal(t, 3, p1.Stock)
	assert.Equal(t, 2, p2.Stock)

	// Both ledger rows exist and share one commit timestamp
	var entradas []model.Venta
	require.NoError(t, db.Order("id ASC").Find(&entradas).Error)
	require.Len(t, entradas, 2)
	assert.True(t, entradas[0].FechaHora.Equal(entradas[1].FechaHora))
	assert.Equal(t, "20", entradas[0].Monto.String())
	assert.Equal(t, "8", entradas[1].Monto.String())
}

func TestTransaccion_CorteLeeLibroReal(t *testing.T) {
	db := abrirDBPrueba(t)
	sembrarProducto(t, db, "750100000001", "Paracetamol 500mg", 10, 10)

	ventaRepo := repository.NewVentaRepository(db)
	ventaSvc := service.NewVentaService(
		repository.NewProductoRepository(db), ventaRepo, 5.0, nil, nil,
	)
	corteSvc := service.NewCorteService(ventaRepo, t.TempDir(), "Q")

	for i := 0; i < 3; i++ {
		_, err := ventaSvc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
			Lineas:       []dto.LineaVentaRequest{{Codigo: "750100000001", Cantidad: 1, PrecioVisto: decimal.NewFromFloat(10)}},
			MetodoPago:   "efectivo",
			PagoEfectivo: decimal.NewFromFloat(10),
		})
		require.NoError(t, err)
	}

	resumen, err := corteSvc.Resumen(context.Background(), service.PeriodoDiario, time.Now())
	require.NoError(t, err)
	require.Len(t, resumen.Ventas, 3)
	assert.Equal(t, "30", resumen.Total.String())
	// The join resolves the product name for every row
	assert.Equal(t, "Paracetamol 500mg", resumen.Ventas[0].NombreProducto)
}
