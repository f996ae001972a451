package service

import (
	"context"
	"fmt"
	"time"

	"farmapos/internal/dto"
	"farmapos/internal/infra"
	"farmapos/internal/repository"

	"github.com/shopspring/decimal"
)

// Valid corte periods. The week and month windows use fixed day offsets
// (7 and 30 days) rather than calendar-aware boundaries, preserving the
// behavior the reports have always had.
const (
	PeriodoDiario  = "diario"
	PeriodoSemanal = "semanal"
	PeriodoMensual = "mensual"
)

// CorteService is the aggregation engine: it derives period summaries
// ("cortes") from the sales ledger. Read-only — it never mutates the ledger
// or the inventory.
type CorteService interface {
	Resumen(ctx context.Context, periodo string, ref time.Time) (*dto.ResumenPeriodoResponse, error)
	GenerarCorte(ctx context.Context, periodo, nombreNegocio string) (string, error)
}

type corteService struct {
	ventaRepo   repository.VentaRepository
	storagePath string
	moneda      string
	// now is swappable in tests; defaults to time.Now.
	now func() time.Time
}

func NewCorteService(ventaRepo repository.VentaRepository, storagePath, moneda string) CorteService {
	return &corteService{
		ventaRepo:   ventaRepo,
		storagePath: storagePath,
		moneda:      moneda,
		now:         time.Now,
	}
}

// VentanaPeriodo computes the query window for a corte period relative to ref:
// diario = [local midnight of ref, ref], semanal = [ref − 7 days, ref],
// mensual = [ref − 30 days, ref].
func VentanaPeriodo(periodo string, ref time.Time) (desde, hasta time.Time, err error) {
	hasta = ref
	switch periodo {
	case PeriodoDiario:
		y, m, d := ref.Date()
		desde = time.Date(y, m, d, 0, 0, 0, 0, ref.Location())
	case PeriodoSemanal:
		desde = ref.AddDate(0, 0, -7)
	case PeriodoMensual:
		desde = ref.AddDate(0, 0, -30)
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: periodo desconocido %q", ErrVentaInvalida, periodo)
	}
	return desde, hasta, nil
}

func (s *corteService) Resumen(ctx context.Context, periodo string, ref time.Time) (*dto.ResumenPeriodoResponse, error) {
	if ref.IsZero() {
		ref = s.now()
	}
	desde, hasta, err := VentanaPeriodo(periodo, ref)
	if err != nil {
		return nil, err
	}

	ventas, err := s.ventaRepo.QueryRange(ctx, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlmacenNoDisponible, err)
	}

	total := decimal.Zero
	for _, v := range ventas {
		total = total.Add(v.Monto)
	}

	return &dto.ResumenPeriodoResponse{
		Periodo: periodo,
		Desde:   desde.Format(time.RFC3339),
		Hasta:   hasta.Format(time.RFC3339),
		Ventas:  ventas,
		Total:   total,
	}, nil
}

// GenerarCorte builds the period summary and renders it as a PDF report,
// returning the path of the generated file.
func (s *corteService) GenerarCorte(ctx context.Context, periodo, nombreNegocio string) (string, error) {
	resumen, err := s.Resumen(ctx, periodo, time.Time{})
	if err != nil {
		return "", err
	}
	return infra.GenerarCortePDF(resumen, nombreNegocio, s.moneda, s.storagePath)
}
