package handler

import (
	"net/http"

	"farmapos/internal/apierror"
	"farmapos/internal/infra"

	"github.com/gin-gonic/gin"
)

type ImpresorasHandler struct{ client *infra.PrintClient }

func NewImpresorasHandler(client *infra.PrintClient) *ImpresorasHandler {
	return &ImpresorasHandler{client: client}
}

// Listar godoc
// @Summary      Listar impresoras disponibles
// @Description  Enumera las impresoras registradas en el sistema (CUPS). Una lista vacía no es un error: sin impresoras la venta sigue funcionando.
// @Tags         impresoras
// @Produce      json
// @Success      200 {array} infra.Impresora
// @Router       /v1/impresoras [get]
func (h *ImpresorasHandler) Listar(c *gin.Context) {
	impresoras, err := h.client.ListarImpresoras(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, apierror.New("Error al consultar impresoras"))
		return
	}
	c.JSON(http.StatusOK, impresoras)
}
