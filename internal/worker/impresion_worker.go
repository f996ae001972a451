package worker

// impresion_worker.go
// Processes receipt print jobs from QueueImpresion: renders the ticket PDF
// and submits it to the OS print subsystem. Runs strictly after the sale
// committed, so a printer failure can never corrupt stock or the ledger.

import (
	"context"
	"encoding/json"

	"farmapos/internal/dto"
	"farmapos/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxIntentosImpresion = 3

// TicketJob is the job envelope sent to QueueImpresion.
type TicketJob struct {
	Venta     dto.VentaResponse `json:"venta"`
	Impresora string            `json:"impresora"`
}

// ImpresionWorker renders and prints receipt tickets.
type ImpresionWorker struct {
	printer       *infra.PrintClient
	storagePath   string
	nombreNegocio string
	moneda        string
}

func NewImpresionWorker(printer *infra.PrintClient, storagePath, nombreNegocio, moneda string) *ImpresionWorker {
	return &ImpresionWorker{
		printer:       printer,
		storagePath:   storagePath,
		nombreNegocio: nombreNegocio,
		moneda:        moneda,
	}
}

// Process handles one print job. On failure the job is re-enqueued up to
// maxIntentosImpresion times, then moved to the dead letter queue.
func (w *ImpresionWorker) Process(ctx context.Context, rdb *redis.Client, queue string, job Job) {
	var payload TicketJob
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		log.Error().Err(err).Msg("impresion_worker: payload invalido")
		return
	}

	err := w.imprimir(ctx, &payload)
	if err == nil {
		log.Info().Str("impresora", payload.Impresora).Msg("impresion_worker: ticket impreso")
		return
	}

	job.Attempts++
	if job.Attempts >= maxIntentosImpresion {
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
		return
	}

	log.Warn().Err(err).Int("intento", job.Attempts).Msg("impresion_worker: reintentando")
	if encoded, mErr := json.Marshal(job); mErr == nil {
		if pushErr := rdb.LPush(ctx, queue, encoded).Err(); pushErr != nil {
			log.Error().Err(pushErr).Msg("impresion_worker: no se pudo reencolar")
		}
	}
}

func (w *ImpresionWorker) imprimir(ctx context.Context, payload *TicketJob) error {
	pdfPath, err := infra.GenerarTicketPDF(&payload.Venta, w.nombreNegocio, w.moneda, w.storagePath)
	if err != nil {
		return err
	}
	return w.printer.Imprimir(ctx, pdfPath, payload.Impresora)
}
