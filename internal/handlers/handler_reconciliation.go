package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Dadminete/caja-ledger/internal/core/domain"
	portssvc "github.com/Dadminete/caja-ledger/internal/core/ports/services"
	"github.com/Dadminete/caja-ledger/internal/middleware"
)

// reconciliationHandler handles HTTP requests for the operator audit view.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

// newReconciliationHandler creates a new reconciliationHandler.
func newReconciliationHandler(reconciliationService portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{
		reconciliationService: reconciliationService,
	}
}

// reconcile godoc
// @Summary Reconcile one container
// @Description Compares the cached balance against the journal fold; drift is data, not an error
// @Tags reconciliation
// @Produce  json
// @Param   containerType query string true "DRAWER or BANK_ACCOUNT"
// @Param   containerID query string true "Container ID"
// @Success 200 {object} domain.BalanceReport
// @Failure 404 {object} map[string]string "Container not found"
// @Router /reconciliation [get]
func (h *reconciliationHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ref, ok := parseContainerRefQuery(c)
	if !ok {
		return
	}

	report, err := h.reconciliationService.Reconcile(c.Request.Context(), ref)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// reconcileAll godoc
// @Summary Reconcile every container
// @Tags reconciliation
// @Produce  json
// @Success 200 {array} domain.BalanceReport
// @Router /reconciliation/all [get]
func (h *reconciliationHandler) reconcileAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	reports, err := h.reconciliationService.ReconcileAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, reports)
}

// repairBalance godoc
// @Summary Repair a cached balance
// @Description Resets the cached balance to the journal fold, recording an audit row
// @Tags reconciliation
// @Produce  json
// @Param   containerType query string true "DRAWER or BANK_ACCOUNT"
// @Param   containerID query string true "Container ID"
// @Success 200 {object} domain.BalanceRepair
// @Failure 404 {object} map[string]string "Container not found"
// @Router /reconciliation/repair [post]
func (h *reconciliationHandler) repairBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ref, ok := parseContainerRefQuery(c)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	repair, err := h.reconciliationService.Repair(c.Request.Context(), ref, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, repair)
}

// findOrphans godoc
// @Summary Scan for structural integrity violations
// @Description Reports entries addressing unknown containers, dangling account links, and unlinked containers
// @Tags reconciliation
// @Produce  json
// @Success 200 {array} domain.OrphanRef
// @Router /reconciliation/orphans [get]
func (h *reconciliationHandler) findOrphans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	orphans, err := h.reconciliationService.FindOrphanEntries(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, orphans)
}

// listRepairs godoc
// @Summary List the balance repair history
// @Tags reconciliation
// @Produce  json
// @Param   containerType query string false "DRAWER or BANK_ACCOUNT"
// @Param   containerID query string false "Container ID"
// @Param   limit query int false "Max rows"
// @Success 200 {array} domain.BalanceRepair
// @Router /reconciliation/repairs [get]
func (h *reconciliationHandler) listRepairs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var ref *domain.ContainerRef
	if c.Query("containerType") != "" || c.Query("containerID") != "" {
		parsed, ok := parseContainerRefQuery(c)
		if !ok {
			return
		}
		ref = &parsed
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	repairs, err := h.reconciliationService.ListRepairs(c.Request.Context(), ref, limit)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, repairs)
}

// registerReconciliationRoutes registers reconciliation specific routes
func registerReconciliationRoutes(group *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	recon := group.Group("/reconciliation")
	{
		recon.GET("", h.reconcile)
		recon.GET("/all", h.reconcileAll)
		recon.POST("/repair", h.repairBalance)
		recon.GET("/orphans", h.findOrphans)
		recon.GET("/repairs", h.listRepairs)
	}
}
