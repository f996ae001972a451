// Command seedinventario loads an inventory CSV into the database.
// Expected columns: codigo,nombre,precio,stock,estante (header row required).
// Rows with a blank codigo are skipped, matching the import endpoint.
//
// Usage: seedinventario -file inventario.csv
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"os"
	"strconv"
	"time"

	"farmapos/internal/config"
	"farmapos/internal/dto"
	"farmapos/internal/infra"
	"farmapos/internal/repository"
	"farmapos/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	file := flag.String("file", "", "ruta del CSV de inventario")
	flag.Parse()
	if *file == "" {
		log.Fatal().Msg("uso: seedinventario -file inventario.csv")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	records, err := leerCSV(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("failed to read CSV")
	}

	// No Redis here: the import endpoint invalidates the price cache, but the
	// seed tool runs before the server has cached anything.
	svc := service.NewInventarioService(repository.NewProductoRepository(db), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	resp, err := svc.Importar(ctx, records)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}
	log.Info().
		Int("insertados", resp.Insertados).
		Int("omitidos", resp.Omitidos).
		Msg("inventario importado")
}

func leerCSV(path string) ([]dto.ProductoImportRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // estante column is optional

	// Skip header
	if _, err := r.Read(); err != nil {
		return nil, err
	}

	var records []dto.ProductoImportRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 4 {
			log.Warn().Strs("row", row).Msg("fila incompleta, omitida")
			continue
		}

		precio, err := decimal.NewFromString(row[2])
		if err != nil {
			log.Warn().Str("codigo", row[0]).Str("precio", row[2]).Msg("precio invalido, fila omitida")
			continue
		}
		stock, err := strconv.Atoi(row[3])
		if err != nil {
			log.Warn().Str("codigo", row[0]).Str("stock", row[3]).Msg("stock invalido, fila omitida")
			continue
		}

		rec := dto.ProductoImportRecord{
			Codigo: row[0],
			Nombre: row[1],
			Precio: precio,
			Stock:  stock,
		}
		if len(row) > 4 && row[4] != "" {
			estante := row[4]
			rec.Estante = &estante
		}
		records = append(records, rec)
	}
	return records, nil
}
