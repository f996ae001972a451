package handler

import (
	"errors"
	"net/http"

	"farmapos/internal/apierror"
	"farmapos/internal/dto"
	"farmapos/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// Listar godoc
// @Summary  Listar el inventario completo
// @Tags     inventario
// @Produce  json
// @Success  200 {array} model.Producto
// @Router   /v1/inventario [get]
func (h *InventarioHandler) Listar(c *gin.Context) {
	productos, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, apierror.New("Error al listar inventario"))
		return
	}
	c.JSON(http.StatusOK, productos)
}

// Importar godoc
// @Summary      Importar productos al inventario
// @Description  Upsert masivo por código. Las filas sin código se omiten y se cuentan, nunca fallan la importación.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        body body dto.ImportarInventarioRequest true "Productos a importar"
// @Success      200  {object} dto.ImportarInventarioResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/inventario/importar [post]
func (h *InventarioHandler) Importar(c *gin.Context) {
	var req dto.ImportarInventarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Importar(c.Request.Context(), req.Productos)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, apierror.New("Error al importar inventario"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary  Actualizar un producto por código
// @Tags     inventario
// @Accept   json
// @Param    codigo path string true "Código del producto"
// @Param    body   body dto.ActualizarProductoRequest true "Campos nuevos"
// @Success  204
// @Failure  404 {object} apierror.APIError
// @Router   /v1/inventario/{codigo} [put]
func (h *InventarioHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.svc.Actualizar(c.Request.Context(), c.Param("codigo"), req)
	if err != nil {
		var noEncontrado *service.ErrProductoNoEncontrado
		if errors.As(err, &noEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusServiceUnavailable, apierror.New("Error al actualizar producto"))
		return
	}
	c.Status(http.StatusNoContent)
}

// Eliminar godoc
// @Summary  Eliminar un producto por código
// @Tags     inventario
// @Param    codigo path string true "Código del producto"
// @Success  204
// @Failure  404 {object} apierror.APIError
// @Router   /v1/inventario/{codigo} [delete]
func (h *InventarioHandler) Eliminar(c *gin.Context) {
	err := h.svc.Eliminar(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		var noEncontrado *service.ErrProductoNoEncontrado
		if errors.As(err, &noEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusServiceUnavailable, apierror.New("Error al eliminar producto"))
		return
	}
	c.Status(http.StatusNoContent)
}

// Vaciar godoc
// @Summary      Vaciar el inventario completo
// @Description  Borra todos los productos. Operación destructiva pensada para re-importaciones completas.
// @Tags         inventario
// @Success      204
// @Router       /v1/inventario [delete]
func (h *InventarioHandler) Vaciar(c *gin.Context) {
	if err := h.svc.Vaciar(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, apierror.New("Error al vaciar inventario"))
		return
	}
	c.Status(http.StatusNoContent)
}
