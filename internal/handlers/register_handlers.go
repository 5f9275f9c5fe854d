package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	portssvc "github.com/Dadminete/caja-ledger/internal/core/ports/services"
	"github.com/Dadminete/caja-ledger/internal/middleware"
	"github.com/Dadminete/caja-ledger/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service facades.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	dbPool *pgxpool.Pool,
	services *portssvc.ServiceProvider,
) {
	// Health check stays outside the identified API group
	r.GET("/health", getHealth(dbPool))

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceProvider) {
	// Every v1 route requires the acting user id for journal attribution
	v1 := r.Group("/api/v1", middleware.RequireUserID())

	registerRegistryRoutes(v1, services.Registry)
	registerEntryRoutes(v1, services.Journal)
	registerTransferRoutes(v1, services.Transfer)
	registerSessionRoutes(v1, services.Session)
	registerReconciliationRoutes(v1, services.Reconciliation)
}
