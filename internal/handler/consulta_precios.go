package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"farmapos/internal/apierror"
	"farmapos/internal/dto"
	"farmapos/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const precioCacheTTL = 4 * time.Hour

// ConsultaPreciosHandler serves the verificador de precios endpoint: a
// read-only price lookup by barcode with no side effects, cached in Redis so
// the scanner kiosk gets sub-50ms answers.
type ConsultaPreciosHandler struct {
	repo repository.ProductoRepository
	rdb  *redis.Client
}

func NewConsultaPreciosHandler(repo repository.ProductoRepository, rdb *redis.Client) *ConsultaPreciosHandler {
	return &ConsultaPreciosHandler{repo: repo, rdb: rdb}
}

// GetPrecioPorCodigo godoc
// @Summary Consulta de precio por código de barras
// @Tags precio
// @Produce json
// @Param codigo path string true "Código de barras"
// @Success 200 {object} dto.ConsultaPrecioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/precio/{codigo} [get]
func (h *ConsultaPreciosHandler) GetPrecioPorCodigo(c *gin.Context) {
	codigo := c.Param("codigo")
	ctx := c.Request.Context()
	cacheKey := "precio:" + codigo

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.ConsultaPrecioResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	producto, err := h.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		if errors.Is(err, repository.ErrProductoNoExiste) {
			c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
			return
		}
		// A store outage is not a missing product
		c.JSON(http.StatusServiceUnavailable, apierror.New("Error al consultar el producto"))
		return
	}

	resp := dto.ConsultaPrecioResponse{
		Codigo:  producto.Codigo,
		Nombre:  producto.Nombre,
		Precio:  producto.Precio,
		Stock:   producto.Stock,
		Estante: producto.Estante,
	}

	// 3. Populate cache — best effort, ignore errors. The cache is invalidated
	// on every sale and inventory edit, so the TTL is only a backstop.
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, precioCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
