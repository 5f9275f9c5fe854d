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

// sessionHandler handles HTTP requests related to drawer sessions.
type sessionHandler struct {
	sessionService portssvc.SessionSvcFacade
}

// newSessionHandler creates a new sessionHandler.
func newSessionHandler(sessionService portssvc.SessionSvcFacade) *sessionHandler {
	return &sessionHandler{
		sessionService: sessionService,
	}
}

// openSession godoc
// @Summary Open a drawer session
// @Description Starts the apertura for a drawer with the counted opening cash
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   drawerID path string true "Drawer ID"
// @Param   session body dto.OpenSessionRequest true "Opening count"
// @Success 201 {object} dto.SessionResponse
// @Failure 409 {object} map[string]string "Session already open"
// @Router /drawers/{drawerID}/sessions/open [post]
func (h *sessionHandler) openSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	drawerID := c.Param("drawerID")

	req := dto.OpenSessionRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for openSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	session, err := h.sessionService.OpenSession(c.Request.Context(), drawerID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSessionResponse(session))
}

// closeSession godoc
// @Summary Close a drawer session
// @Description Ends the open session, computing the expected closing and variance
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   drawerID path string true "Drawer ID"
// @Param   session body dto.CloseSessionRequest true "Closing count"
// @Success 200 {object} dto.CloseSessionResponse
// @Failure 404 {object} map[string]string "No open session"
// @Router /drawers/{drawerID}/sessions/close [post]
func (h *sessionHandler) closeSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	drawerID := c.Param("drawerID")

	req := dto.CloseSessionRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for closeSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	session, totals, err := h.sessionService.CloseSession(c.Request.Context(), drawerID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.CloseSessionResponse{
		Session: dto.ToSessionResponse(session),
		Totals:  *totals,
	})
}

// getOpenSession godoc
// @Summary Get the drawer's open session
// @Tags sessions
// @Produce  json
// @Param   drawerID path string true "Drawer ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} map[string]string "No open session"
// @Router /drawers/{drawerID}/sessions/open [get]
func (h *sessionHandler) getOpenSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	drawerID := c.Param("drawerID")

	session, err := h.sessionService.GetOpenSession(c.Request.Context(), drawerID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// listSessions godoc
// @Summary List a drawer's session history
// @Description Retrieves a paginated session history, newest first
// @Tags sessions
// @Produce  json
// @Param   drawerID path string true "Drawer ID"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListSessionsResponse
// @Router /drawers/{drawerID}/sessions [get]
func (h *sessionHandler) listSessions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	drawerID := c.Param("drawerID")

	params := dto.ListSessionsParams{}
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

	resp, err := h.sessionService.GetSessionHistory(c.Request.Context(), drawerID, params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// registerSessionRoutes registers drawer session specific routes
func registerSessionRoutes(group *gin.RouterGroup, sessionService portssvc.SessionSvcFacade) {
	h := newSessionHandler(sessionService)

	sessions := group.Group("/drawers/:drawerID/sessions")
	{
		sessions.GET("", h.listSessions)
		sessions.POST("/open", h.openSession)
		sessions.GET("/open", h.getOpenSession)
		sessions.POST("/close", h.closeSession)
	}
}
