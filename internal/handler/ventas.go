package handler

import (
	"errors"
	"net/http"

	"farmapos/internal/apierror"
	"farmapos/internal/dto"
	"farmapos/internal/service"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// RegistrarVenta godoc
// @Summary      Registrar una nueva venta
// @Description  Cobra un carrito de forma atómica: valida stock, descuenta inventario y agrega las líneas al libro de ventas en una sola transacción.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistrarVentaRequest true "Detalle de la venta"
// @Success      201  {object} dto.VentaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/ventas [post]
func (h *VentasHandler) RegistrarVenta(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.RegistrarVenta(c.Request.Context(), req)
	if err != nil {
		status := estadoParaError(err)
		switch {
		case status == http.StatusInternalServerError:
			c.Error(err)
			c.JSON(status, apierror.New("Error al registrar la venta"))
		case errors.Is(err, service.ErrCommitFallido):
			// Never echo what the storage layer said — only the retryable
			// sentinel crosses the API boundary.
			c.JSON(status, apierror.New(service.ErrCommitFallido.Error()))
		case errors.Is(err, service.ErrAlmacenNoDisponible):
			c.JSON(status, apierror.New(service.ErrAlmacenNoDisponible.Error()))
		default:
			c.JSON(status, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// estadoParaError maps business errors from the sale engine to HTTP codes.
// Anything not in the taxonomy is an internal error and must not leak detail.
func estadoParaError(err error) int {
	var (
		noEncontrado *service.ErrProductoNoEncontrado
		sinStock     *service.ErrStockInsuficiente
		pagoCorto    *service.ErrPagoInsuficiente
	)
	switch {
	case errors.Is(err, service.ErrVentaInvalida), errors.As(err, &pagoCorto):
		return http.StatusBadRequest
	case errors.As(err, &noEncontrado):
		return http.StatusNotFound
	case errors.As(err, &sinStock), errors.Is(err, service.ErrCommitFallido):
		return http.StatusConflict
	case errors.Is(err, service.ErrAlmacenNoDisponible):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
