package infra

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Impresora describes one printer known to the OS print subsystem.
type Impresora struct {
	Nombre string `json:"nombre"`
}

// PrintClient is a thin pass-through to the OS print subsystem (CUPS). The
// engine only hands it finished PDF files — rendering lives in pdf.go and
// the physical rasterization in the spooler.
type PrintClient struct {
	timeout time.Duration
}

func NewPrintClient() *PrintClient {
	return &PrintClient{timeout: 30 * time.Second}
}

// ListarImpresoras returns the printers the spooler knows about.
// An empty list is not an error: a machine without printers is a valid setup.
func (c *PrintClient) ListarImpresoras(ctx context.Context) ([]Impresora, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "lpstat", "-e").Output()
	if err != nil {
		// lpstat exits non-zero when no destinations exist
		return []Impresora{}, nil
	}

	var impresoras []Impresora
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		nombre := strings.TrimSpace(sc.Text())
		if nombre != "" {
			impresoras = append(impresoras, Impresora{Nombre: nombre})
		}
	}
	return impresoras, sc.Err()
}

// Imprimir submits a PDF file to the named printer.
func (c *PrintClient) Imprimir(ctx context.Context, pdfPath, impresora string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "lp", "-d", impresora,
		"-o", "fit-to-page", "-o", "media=Custom.48x297mm", pdfPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("imprimir en %s: %w: %s", impresora, err, strings.TrimSpace(string(out)))
	}
	return nil
}
