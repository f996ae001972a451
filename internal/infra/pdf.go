package infra

// pdf.go — receipt and corte documents rendered with go-pdf/fpdf.
//
// The ticket targets 48mm thermal paper (48×297mm custom size): business name
// header, timestamp, product/qty/amount table, total, pago and vuelto. The
// corte report uses the same paper with the period window and the joined
// ledger rows.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"farmapos/internal/dto"

	"github.com/go-pdf/fpdf"
)

const (
	ticketAncho = 48  // mm
	ticketAlto  = 297 // mm — thermal roll, height is nominal
)

func nuevoTicket() *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: ticketAncho, Ht: ticketAlto},
	})
	pdf.SetMargins(2, 3, 2)
	pdf.SetAutoPageBreak(true, 3)
	pdf.AddPage()
	return pdf
}

// recortar truncates a product name to fit the narrow ticket column,
// counting runes so accented names never get split mid-character.
func recortar(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func separador(pdf *fpdf.Fpdf) {
	ancho, _ := pdf.GetPageSize()
	pdf.Line(2, pdf.GetY(), ancho-2, pdf.GetY())
	pdf.Ln(1)
}

// GenerarTicketPDF renders the receipt for a committed sale and returns the
// path of the written file. storagePath is created if needed.
func GenerarTicketPDF(venta *dto.VentaResponse, nombreNegocio, moneda, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: crear directorio: %w", err)
	}

	fecha, err := time.Parse(time.RFC3339, venta.Fecha)
	if err != nil {
		fecha = time.Now()
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("ticket_%d.pdf", fecha.UnixNano()))

	pdf := nuevoTicket()
	contentW := float64(ticketAncho) - 4

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 5, nombreNegocio, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "Fecha: "+fecha.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	separador(pdf)

	// ── Item table ───────────────────────────────────────────────────────────
	col1 := contentW * 0.50
	col2 := contentW * 0.16
	col3 := contentW * 0.34

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 4, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 4, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 4, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, l := range venta.Lineas {
		nombre := recortar(l.Nombre, 16)
		pdf.CellFormat(col1, 4, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 4, fmt.Sprintf("x%d", l.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 4, moneda+l.Monto.StringFixed(2), "", 1, "R", false, 0, "")
	}
	separador(pdf)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1+col2, 5, "Total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, moneda+venta.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	if venta.MetodoPago == "efectivo" {
		pdf.CellFormat(col1+col2, 4, "Pago:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, moneda+venta.Total.Add(venta.Vuelto).StringFixed(2), "", 1, "R", false, 0, "")
		pdf.CellFormat(col1+col2, 4, "Vuelto:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, moneda+venta.Vuelto.StringFixed(2), "", 1, "R", false, 0, "")
	} else {
		pdf.CellFormat(contentW, 4, "Pago con tarjeta", "", 1, "L", false, 0, "")
	}
	separador(pdf)

	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su compra!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: escribir ticket: %w", err)
	}
	return filePath, nil
}

// GenerarCortePDF renders a period summary report and returns the file path.
func GenerarCortePDF(resumen *dto.ResumenPeriodoResponse, nombreNegocio, moneda, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: crear directorio: %w", err)
	}
	filePath := filepath.Join(storagePath,
		fmt.Sprintf("corte_%s_%d.pdf", resumen.Periodo, time.Now().UnixNano()))

	pdf := nuevoTicket()
	contentW := float64(ticketAncho) - 4

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 5, nombreNegocio, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 4, "Corte "+resumen.Periodo, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 6)
	pdf.CellFormat(contentW, 3, "Desde: "+resumen.Desde, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 3, "Hasta: "+resumen.Hasta, "", 1, "C", false, 0, "")
	separador(pdf)

	col1 := contentW * 0.44
	col2 := contentW * 0.16
	col3 := contentW * 0.40

	pdf.SetFont("Helvetica", "B", 6)
	pdf.CellFormat(col1, 4, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 4, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 4, "Monto", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	for _, v := range resumen.Ventas {
		nombre := v.NombreProducto
		if nombre == "" {
			nombre = v.CodigoProducto
		}
		nombre = recortar(nombre, 18)
		pdf.CellFormat(col1, 3.5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 3.5, fmt.Sprintf("%d", v.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 3.5, moneda+v.Monto.StringFixed(2), "", 1, "R", false, 0, "")
	}
	separador(pdf)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1+col2, 5, "Total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, moneda+resumen.Total.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: escribir corte: %w", err)
	}
	return filePath, nil
}
