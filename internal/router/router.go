package router

import (
	"time"

	"farmapos/internal/config"
	"farmapos/internal/handler"
	"farmapos/internal/infra"
	"farmapos/internal/middleware"
	"farmapos/internal/repository"
	"farmapos/internal/service"
	"farmapos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	printClient := infra.NewPrintClient()

	// ── Repositories ─────────────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	inventarioSvc := service.NewInventarioService(productoRepo, rdb)
	ventaSvc := service.NewVentaService(productoRepo, ventaRepo, cfg.RecargoTarjetaPct, dispatcher, rdb)
	corteSvc := service.NewCorteService(ventaRepo, cfg.PDFStoragePath, cfg.Moneda)

	// ── Handlers ─────────────────────────────────────────────────────────────
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	cortesH := handler.NewCortesHandler(corteSvc, cfg.NombreNegocio)
	impresorasH := handler.NewImpresorasHandler(printClient)
	consultaH := handler.NewConsultaPreciosHandler(productoRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	// Price check kiosk — read-only, no side effects
	r.GET("/v1/precio/:codigo", consultaH.GetPrecioPorCodigo)

	v1 := r.Group("/v1")
	{
		inv := v1.Group("/inventario")
		{
			inv.GET("", inventarioH.Listar)
			inv.POST("/importar", inventarioH.Importar)
			inv.PUT("/:codigo", inventarioH.Actualizar)
			inv.DELETE("/:codigo", inventarioH.Eliminar)
			inv.DELETE("", inventarioH.Vaciar)
		}

		v1.POST("/ventas", ventasH.RegistrarVenta)

		v1.GET("/cortes/:periodo", cortesH.Resumen)
		v1.POST("/cortes/:periodo/pdf", cortesH.GenerarPDF)

		v1.GET("/impresoras", impresorasH.Listar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
