package repository

import (
	"context"
	"time"

	"farmapos/internal/dto"
	"farmapos/internal/model"

	"gorm.io/gorm"
)

// VentaRepository is the append-only sales ledger contract. There are no
// update or delete operations: committed rows are immutable.
type VentaRepository interface {
	// AppendTx writes all entries of one sale inside the sale's transaction.
	AppendTx(tx *gorm.DB, entradas []model.Venta) error
	// QueryRange returns ledger rows joined with the current product name,
	// ordered by fecha_hora descending.
	QueryRange(ctx context.Context, desde, hasta time.Time) ([]dto.CorteEntrada, error)

	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) AppendTx(tx *gorm.DB, entradas []model.Venta) error {
	if len(entradas) == 0 {
		return nil
	}
	return tx.Create(&entradas).Error
}

func (r *ventaRepo) QueryRange(ctx context.Context, desde, hasta time.Time) ([]dto.CorteEntrada, error) {
	var rows []dto.CorteEntrada
	err := r.db.WithContext(ctx).
		Table("ventas").
		Select("ventas.fecha_hora, ventas.codigo_producto, COALESCE(productos.nombre, '') AS nombre, ventas.cantidad, ventas.monto").
		Joins("LEFT JOIN productos ON productos.codigo = ventas.codigo_producto").
		Where("ventas.fecha_hora BETWEEN ? AND ?", desde, hasta).
		Order("ventas.fecha_hora DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ventaRepo) DB() *gorm.DB { return r.db }
