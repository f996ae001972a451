package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"farmapos/internal/dto"
	"farmapos/internal/model"
	"farmapos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// InventarioService is the inventory store surface exposed to the UI:
// listing, bulk import, manual edit, deletion. Stock decrements are NOT here —
// they happen exclusively inside the sale transaction.
type InventarioService interface {
	Listar(ctx context.Context) ([]model.Producto, error)
	// Importar upserts the given records, idempotent by codigo. Records with a
	// blank codigo are skipped and counted, never an error.
	Importar(ctx context.Context, records []dto.ProductoImportRecord) (*dto.ImportarInventarioResponse, error)
	Actualizar(ctx context.Context, codigo string, req dto.ActualizarProductoRequest) error
	Eliminar(ctx context.Context, codigo string) error
	Vaciar(ctx context.Context) error
}

type inventarioService struct {
	repo repository.ProductoRepository
	rdb  *redis.Client
}

func NewInventarioService(repo repository.ProductoRepository, rdb *redis.Client) InventarioService {
	return &inventarioService{repo: repo, rdb: rdb}
}

func (s *inventarioService) Listar(ctx context.Context) ([]model.Producto, error) {
	productos, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlmacenNoDisponible, err)
	}
	return productos, nil
}

func (s *inventarioService) Importar(ctx context.Context, records []dto.ProductoImportRecord) (*dto.ImportarInventarioResponse, error) {
	productos := make([]model.Producto, 0, len(records))
	omitidos := 0
	for _, r := range records {
		codigo := strings.TrimSpace(r.Codigo)
		if codigo == "" {
			omitidos++
			continue
		}
		productos = append(productos, model.Producto{
			ID:      uuid.New(),
			Codigo:  codigo,
			Nombre:  r.Nombre,
			Precio:  r.Precio,
			Stock:   r.Stock,
			Estante: r.Estante,
		})
	}

	if err := s.repo.Upsert(ctx, productos); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlmacenNoDisponible, err)
	}

	s.invalidarCachePrecios(ctx, productos)
	return &dto.ImportarInventarioResponse{
		Insertados: len(productos),
		Omitidos:   omitidos,
	}, nil
}

func (s *inventarioService) Actualizar(ctx context.Context, codigo string, req dto.ActualizarProductoRequest) error {
	p := &model.Producto{
		Codigo:  codigo,
		Nombre:  req.Nombre,
		Precio:  req.Precio,
		Stock:   req.Stock,
		Estante: req.Estante,
	}
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrProductoNoExiste) {
			return &ErrProductoNoEncontrado{Codigo: codigo}
		}
		return fmt.Errorf("%w: %v", ErrAlmacenNoDisponible, err)
	}
	s.invalidarCachePrecios(ctx, []model.Producto{*p})
	return nil
}

func (s *inventarioService) Eliminar(ctx context.Context, codigo string) error {
	if err := s.repo.DeleteByCodigo(ctx, codigo); err != nil {
		if errors.Is(err, repository.ErrProductoNoExiste) {
			return &ErrProductoNoEncontrado{Codigo: codigo}
		}
		return fmt.Errorf("%w: %v", ErrAlmacenNoDisponible, err)
	}
	s.invalidarCachePrecios(ctx, []model.Producto{{Codigo: codigo}})
	return nil
}

func (s *inventarioService) Vaciar(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrAlmacenNoDisponible, err)
	}
	s.vaciarCachePrecios(ctx)
	return nil
}

// ── Price cache maintenance ──────────────────────────────────────────────────
// Best effort: a stale cache entry only affects the read-only price check,
// never a commit (the engine re-prices from the store inside the transaction).

func (s *inventarioService) invalidarCachePrecios(ctx context.Context, productos []model.Producto) {
	if s.rdb == nil || len(productos) == 0 {
		return
	}
	keys := make([]string, 0, len(productos))
	for _, p := range productos {
		keys = append(keys, "precio:"+p.Codigo)
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("inventario: no se pudo invalidar cache de precios")
	}
}

func (s *inventarioService) vaciarCachePrecios(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	iter := s.rdb.Scan(ctx, 0, "precio:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Warn().Err(err).Msg("inventario: no se pudo vaciar cache de precios")
			return
		}
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("inventario: scan de cache de precios fallo")
	}
}
