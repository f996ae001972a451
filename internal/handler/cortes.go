package handler

import (
	"errors"
	"net/http"
	"time"

	"farmapos/internal/apierror"
	"farmapos/internal/dto"
	"farmapos/internal/service"

	"github.com/gin-gonic/gin"
)

type CortesHandler struct {
	svc           service.CorteService
	nombreNegocio string
}

func NewCortesHandler(svc service.CorteService, nombreNegocio string) *CortesHandler {
	return &CortesHandler{svc: svc, nombreNegocio: nombreNegocio}
}

// Resumen godoc
// @Summary      Resumen de ventas por periodo
// @Description  Agrega el libro de ventas sobre la ventana del periodo: diario (desde medianoche), semanal (últimos 7 días) o mensual (últimos 30 días).
// @Tags         cortes
// @Produce      json
// @Param        periodo path string true "diario | semanal | mensual"
// @Success      200 {object} dto.ResumenPeriodoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/cortes/{periodo} [get]
func (h *CortesHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.Resumen(c.Request.Context(), c.Param("periodo"), time.Time{})
	if err != nil {
		if errors.Is(err, service.ErrVentaInvalida) {
			c.JSON(http.StatusBadRequest, apierror.New("Periodo invalido: use diario, semanal o mensual"))
			return
		}
		c.JSON(http.StatusServiceUnavailable, apierror.New("Error al generar resumen"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GenerarPDF godoc
// @Summary      Generar el PDF de un corte
// @Description  Emite el corte del periodo como ticket térmico de 48mm listo para imprimir.
// @Tags         cortes
// @Accept       json
// @Produce      json
// @Param        periodo path string               true  "diario | semanal | mensual"
// @Param        body    body dto.GenerarCorteRequest false "Personalización del encabezado"
// @Success      201 {object} dto.GenerarCorteResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/cortes/{periodo}/pdf [post]
func (h *CortesHandler) GenerarPDF(c *gin.Context) {
	var req dto.GenerarCorteRequest
	// Body is optional — an empty body means default header.
	if c.Request.ContentLength > 0 && !bindAndValidate(c, &req) {
		return
	}
	nombre := h.nombreNegocio
	if req.NombreNegocio != "" {
		nombre = req.NombreNegocio
	}

	path, err := h.svc.GenerarCorte(c.Request.Context(), c.Param("periodo"), nombre)
	if err != nil {
		if errors.Is(err, service.ErrVentaInvalida) {
			c.JSON(http.StatusBadRequest, apierror.New("Periodo invalido: use diario, semanal o mensual"))
			return
		}
		c.JSON(http.StatusServiceUnavailable, apierror.New("Error al generar PDF del corte"))
		return
	}
	c.JSON(http.StatusCreated, dto.GenerarCorteResponse{PDFPath: path})
}
