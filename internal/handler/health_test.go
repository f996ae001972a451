package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestHealth_RedisCaido(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:health_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Nothing listens on port 1: the redis probe must fail fast and mark the
	// component down without taking the whole endpoint with it.
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		ReadTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", Health(db, rdb))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"estado":"degradado"`)
	assert.Contains(t, w.Body.String(), `"db":"ok"`)
	assert.Contains(t, w.Body.String(), `"redis":"caido"`)
}
