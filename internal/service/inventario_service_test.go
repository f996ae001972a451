package service_test

import (
	"context"
	"testing"

	"farmapos/internal/dto"
	"farmapos/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildInventarioSvc() (service.InventarioService, *stubProductoRepo) {
	repo := newStubProductoRepo()
	return service.NewInventarioService(repo, nil), repo
}

func TestImportar_OmiteCodigosVacios(t *testing.T) {
	svc, repo := buildInventarioSvc()

	resp, err := svc.Importar(context.Background(), []dto.ProductoImportRecord{
		{Codigo: "750100000001", Nombre: "Paracetamol 500mg", Precio: decimal.NewFromFloat(10), Stock: 50},
		{Codigo: "   ", Nombre: "Sin codigo", Precio: decimal.NewFromFloat(5), Stock: 10},
		{Codigo: "", Nombre: "Tampoco", Precio: decimal.NewFromFloat(5), Stock: 10},
		{Codigo: "750100000002", Nombre: "Ibuprofeno 400mg", Precio: decimal.NewFromFloat(8), Stock: 30},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Insertados)
	assert.Equal(t, 2, resp.Omitidos)
	assert.Equal(t, 50, repo.stockDe("750100000001"))
	assert.Equal(t, 30, repo.stockDe("750100000002"))
}

func TestImportar_IdempotentePorCodigo(t *testing.T) {
	svc, repo := buildInventarioSvc()

	records := []dto.ProductoImportRecord{
		{Codigo: "750100000001", Nombre: "Paracetamol 500mg", Precio: decimal.NewFromFloat(10), Stock: 50},
	}
	_, err := svc.Importar(context.Background(), records)
	require.NoError(t, err)

	// Re-import with new price and stock: last write wins, no duplicate row.
	records[0].Precio = decimal.NewFromFloat(12)
	records[0].Stock = 40
	resp, err := svc.Importar(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Insertados)

	productos, err := svc.Listar(context.Background())
	require.NoError(t, err)
	require.Len(t, productos, 1)
	assert.Equal(t, "12", productos[0].Precio.String())
	assert.Equal(t, 40, productos[0].Stock)
	assert.Equal(t, 40, repo.stockDe("750100000001"))
}

func TestActualizar_ProductoInexistente(t *testing.T) {
	svc, _ := buildInventarioSvc()

	err := svc.Actualizar(context.Background(), "999999999999", dto.ActualizarProductoRequest{
		Nombre: "Fantasma",
		Precio: decimal.NewFromFloat(1),
	})

	var noEncontrado *service.ErrProductoNoEncontrado
	require.ErrorAs(t, err, &noEncontrado)
	assert.Equal(t, "999999999999", noEncontrado.Codigo)
}

func TestEliminarYVaciar(t *testing.T) {
	svc, _ := buildInventarioSvc()

	_, err := svc.Importar(context.Background(), []dto.ProductoImportRecord{
		{Codigo: "750100000001", Nombre: "Paracetamol 500mg", Precio: decimal.NewFromFloat(10), Stock: 50},
		{Codigo: "750100000002", Nombre: "Ibuprofeno 400mg", Precio: decimal.NewFromFloat(8), Stock: 30},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Eliminar(context.Background(), "750100000001"))

	var noEncontrado *service.ErrProductoNoEncontrado
	assert.ErrorAs(t, svc.Eliminar(context.Background(), "750100000001"), &noEncontrado)

	require.NoError(t, svc.Vaciar(context.Background()))
	productos, err := svc.Listar(context.Background())
	require.NoError(t, err)
	assert.Empty(t, productos)
}
