package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const sondaTimeout = 3 * time.Second

// Health reports the state of the two stores the sale engine depends on.
// The engine fails closed when either is down, so the frontend polls this
// endpoint to decide whether the register can keep selling. Only up/down per
// component — no versions, no addresses.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), sondaTimeout)
		defer cancel()

		estadoDB := "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			estadoDB = "caido"
		}

		estadoRedis := "ok"
		if rdb.Ping(ctx).Err() != nil {
			estadoRedis = "caido"
		}

		estado := "ok"
		code := http.StatusOK
		if estadoDB != "ok" || estadoRedis != "ok" {
			estado = "degradado"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"estado": estado,
			"db":     estadoDB,
			"redis":  estadoRedis,
		})
	}
}
