package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/Dadminete/caja-ledger/internal/core/ports/services"
	"github.com/Dadminete/caja-ledger/internal/dto"
	"github.com/Dadminete/caja-ledger/internal/middleware"
)

// transferHandler handles HTTP requests related to transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

// newTransferHandler creates a new transferHandler.
func newTransferHandler(transferService portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{
		transferService: transferService,
	}
}

// executeTransfer godoc
// @Summary Execute a transfer between two containers
// @Description Posts the expense and income legs atomically and records the transfer
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.ExecuteTransferRequest true "Transfer"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Router /transfers [post]
func (h *transferHandler) executeTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.ExecuteTransferRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for executeTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	authorizedBy, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Authorizing user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	transfer, err := h.transferService.ExecuteTransfer(c.Request.Context(), req, authorizedBy)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer))
}

// getTransfer godoc
// @Summary Get a transfer
// @Description Retrieves one transfer by ID
// @Tags transfers
// @Produce  json
// @Param   transferID path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 404 {object} map[string]string "Transfer not found"
// @Router /transfers/{transferID} [get]
func (h *transferHandler) getTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	transfer, err := h.transferService.GetTransferByID(c.Request.Context(), transferID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// listTransfers godoc
// @Summary List transfers
// @Description Retrieves a paginated list of transfers, newest first
// @Tags transfers
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListTransfersResponse
// @Router /transfers [get]
func (h *transferHandler) listTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListTransfersParams{}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		params.Limit = limit
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	resp, err := h.transferService.ListTransfers(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// registerTransferRoutes registers transfer specific routes
func registerTransferRoutes(group *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	transfers := group.Group("/transfers")
	{
		transfers.POST("", h.executeTransfer)
		transfers.GET("", h.listTransfers)
		transfers.GET("/:transferID", h.getTransfer)
	}
}
