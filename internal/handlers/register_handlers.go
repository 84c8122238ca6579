package handlers

import (
	"net/http"

	"github.com/SscSPs/hrms_ledger/cmd/docs"
	portssvc "github.com/SscSPs/hrms_ledger/internal/core/ports/services"
	"github.com/SscSPs/hrms_ledger/internal/middleware"
	"github.com/SscSPs/hrms_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group. Auth is skipped only when no JWT secret is configured.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	var v1 *gin.RouterGroup
	if cfg.JWTSecret != "" {
		v1 = r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	} else {
		v1 = r.Group("/api/v1")
	}

	RegisterAccountingRoutes(v1, services.Transaction, services.Reference)
}

// RegisterAccountingRoutes mounts the ledger endpoints under rg/accounting.
func RegisterAccountingRoutes(rg *gin.RouterGroup, txnSvc portssvc.TransactionSvcFacade, refSvc portssvc.ReferenceSvcFacade) {
	th := newTransactionHandler(txnSvc)
	rh := newReferenceHandler(refSvc)

	accounting := rg.Group("/accounting")
	{
		accounting.POST("/transactions", th.createTransaction)
		accounting.GET("/transactions", th.listTransactions)
		accounting.GET("/transactions/:transactionID", th.getTransaction)
		accounting.GET("/summary", th.getSummary)

		accounting.GET("/accounts", rh.listAccounts)
		accounting.POST("/accounts", rh.createAccount)
		accounting.GET("/categories", rh.listCategories)
		accounting.POST("/categories", rh.createCategory)
		accounting.GET("/vendors", rh.listVendors)
		accounting.POST("/vendors", rh.createVendor)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
