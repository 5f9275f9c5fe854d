package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/Dadminete/caja-ledger/internal/core/ports/services"
	"github.com/Dadminete/caja-ledger/internal/dto"
	"github.com/Dadminete/caja-ledger/internal/middleware"
)

// entryHandler handles HTTP requests related to journal entries and balances.
type entryHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newEntryHandler creates a new entryHandler.
func newEntryHandler(journalService portssvc.JournalSvcFacade) *entryHandler {
	return &entryHandler{
		journalService: journalService,
	}
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Appends one income or expense movement to a container's journal
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.PostEntryRequest true "Entry"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Container or category not found"
// @Router /entries [post]
func (h *entryHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.PostEntryRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.PostEntry(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves one journal entry by ID
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /entries/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries for a container
// @Description Retrieves a paginated list of entries, newest first
// @Tags entries
// @Produce  json
// @Param   containerType query string true "DRAWER or BANK_ACCOUNT"
// @Param   containerID query string true "Container ID"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListEntriesResponse
// @Router /entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ref, ok := parseContainerRefQuery(c)
	if !ok {
		return
	}

	params := dto.ListEntriesParams{}
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

	resp, err := h.journalService.ListEntries(c.Request.Context(), ref, params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getBalance godoc
// @Summary Compute a container balance
// @Description Folds the container's journal, optionally only entries dated at or before asOf
// @Tags entries
// @Produce  json
// @Param   containerType query string true "DRAWER or BANK_ACCOUNT"
// @Param   containerID query string true "Container ID"
// @Param   asOf query string false "RFC3339 cutoff"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} map[string]string "Container not found"
// @Router /balance [get]
func (h *entryHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ref, ok := parseContainerRefQuery(c)
	if !ok {
		return
	}

	var asOf *time.Time
	if asOfStr := c.Query("asOf"); asOfStr != "" {
		t, err := time.Parse(time.RFC3339, asOfStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be an RFC3339 timestamp"})
			return
		}
		asOf = &t
	}

	balance, err := h.journalService.ComputeBalance(c.Request.Context(), ref, asOf)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	asOfVal := time.Now().UTC()
	if asOf != nil {
		asOfVal = *asOf
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Container: ref, Balance: balance, AsOf: asOfVal})
}

// registerEntryRoutes registers entry and balance specific routes
func registerEntryRoutes(group *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newEntryHandler(journalService)

	entries := group.Group("/entries")
	{
		entries.POST("", h.postEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
	}
	group.GET("/balance", h.getBalance)
}
