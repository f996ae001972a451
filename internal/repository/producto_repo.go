package repository

import (
	"context"
	"errors"

	"farmapos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrProductoNoExiste marks lookups/updates that matched no product row.
var ErrProductoNoExiste = errors.New("producto no existe")

// ProductoRepository defines the data access contract for the inventory store.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type ProductoRepository interface {
	List(ctx context.Context) ([]model.Producto, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error)
	// Upsert is idempotent by codigo: last write wins on nombre/precio/stock/estante.
	Upsert(ctx context.Context, productos []model.Producto) error
	Update(ctx context.Context, p *model.Producto) error
	DeleteByCodigo(ctx context.Context, codigo string) error
	DeleteAll(ctx context.Context) error

	// Used inside the sale transaction — callers must pass the tx instance.
	FindByCodigoTx(tx *gorm.DB, codigo string) (*model.Producto, error)
	// DescontarStockTx is the one indivisible stock mutation: a conditional
	// UPDATE … WHERE stock >= cantidad. It returns aplicado=false (no error)
	// when the guard fails, so the engine can abort the whole transaction.
	DescontarStockTx(tx *gorm.DB, codigo string, cantidad int) (aplicado bool, err error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) List(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductoNoExiste
	}
	return &p, err
}

func (r *productoRepo) Upsert(ctx context.Context, productos []model.Producto) error {
	if len(productos) == 0 {
		return nil
	}
	// Import batches can repeat a codigo (real spreadsheets do). Postgres
	// rejects a multi-row ON CONFLICT DO UPDATE that touches the same row
	// twice, so collapse duplicates first — last record wins, matching the
	// row-by-row import this replaced.
	idx := make(map[string]int, len(productos))
	unicos := make([]model.Producto, 0, len(productos))
	for _, p := range productos {
		if i, ok := idx[p.Codigo]; ok {
			p.ID = unicos[i].ID
			unicos[i] = p
			continue
		}
		idx[p.Codigo] = len(unicos)
		unicos = append(unicos, p)
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "codigo"}},
		DoUpdates: clause.AssignmentColumns([]string{"nombre", "precio", "stock", "estante", "updated_at"}),
	}).Create(&unicos).Error
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	res := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("codigo = ?", p.Codigo).
		Updates(map[string]interface{}{
			"nombre":  p.Nombre,
			"precio":  p.Precio,
			"stock":   p.Stock,
			"estante": p.Estante,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductoNoExiste
	}
	return nil
}

func (r *productoRepo) DeleteByCodigo(ctx context.Context, codigo string) error {
	res := r.db.WithContext(ctx).Where("codigo = ?", codigo).Delete(&model.Producto{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductoNoExiste
	}
	return nil
}

func (r *productoRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Producto{}).Error
}

func (r *productoRepo) FindByCodigoTx(tx *gorm.DB, codigo string) (*model.Producto, error) {
	var p model.Producto
	err := tx.Where("codigo = ?", codigo).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductoNoExiste
	}
	return &p, err
}

func (r *productoRepo) DescontarStockTx(tx *gorm.DB, codigo string, cantidad int) (bool, error) {
	res := tx.Model(&model.Producto{}).
		Where("codigo = ? AND stock >= ?", codigo, cantidad).
		Update("stock", gorm.Expr("stock - ?", cantidad))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
