package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Dadminete/caja-ledger/internal/core/domain"
	portssvc "github.com/Dadminete/caja-ledger/internal/core/ports/services"
	"github.com/Dadminete/caja-ledger/internal/dto"
	"github.com/Dadminete/caja-ledger/internal/middleware"
)

// registryHandler handles HTTP requests for drawers, bank accounts, accounts
// and categories.
type registryHandler struct {
	registryService portssvc.RegistrySvcFacade
}

// newRegistryHandler creates a new registryHandler.
func newRegistryHandler(registryService portssvc.RegistrySvcFacade) *registryHandler {
	return &registryHandler{
		registryService: registryService,
	}
}

func listParams(c *gin.Context) (int, int, bool) {
	limit := 20
	offset := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return 0, 0, false
		}
		limit = parsed
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		parsed, err := strconv.Atoi(offsetStr)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
			return 0, 0, false
		}
		offset = parsed
	}
	return limit, offset, true
}

// bindAndUser binds the JSON body into req and fetches the acting user id,
// writing the error response itself on failure.
func bindAndUser(c *gin.Context, logger *slog.Logger, req any) (string, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.Error("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return "", false
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// createDrawer godoc
// @Summary Register a cash drawer
// @Tags registry
// @Accept  json
// @Produce  json
// @Param   drawer body dto.CreateDrawerRequest true "Drawer"
// @Success 201 {object} domain.CashDrawer
// @Router /drawers [post]
func (h *registryHandler) createDrawer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreateDrawerRequest{}
	userID, ok := bindAndUser(c, logger, &req)
	if !ok {
		return
	}

	drawer, err := h.registryService.CreateDrawer(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, drawer)
}

// getDrawer godoc
// @Summary Get a cash drawer
// @Tags registry
// @Produce  json
// @Param   drawerID path string true "Drawer ID"
// @Success 200 {object} domain.CashDrawer
// @Failure 404 {object} map[string]string "Drawer not found"
// @Router /drawers/{drawerID} [get]
func (h *registryHandler) getDrawer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	drawer, err := h.registryService.GetDrawerByID(c.Request.Context(), c.Param("drawerID"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, drawer)
}

// listDrawers godoc
// @Summary List cash drawers
// @Tags registry
// @Produce  json
// @Success 200 {array} domain.CashDrawer
// @Router /drawers [get]
func (h *registryHandler) listDrawers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, offset, ok := listParams(c)
	if !ok {
		return
	}

	drawers, err := h.registryService.ListDrawers(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, drawers)
}

// deactivateDrawer godoc
// @Summary Deactivate a cash drawer
// @Tags registry
// @Param   drawerID path string true "Drawer ID"
// @Success 204 "No Content"
// @Router /drawers/{drawerID} [delete]
func (h *registryHandler) deactivateDrawer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ref := domain.ContainerRef{Type: domain.ContainerDrawer, ID: c.Param("drawerID")}
	if err := h.registryService.DeactivateContainer(c.Request.Context(), ref, userID); err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// createBankAccount godoc
// @Summary Register a bank account
// @Tags registry
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateBankAccountRequest true "Bank account"
// @Success 201 {object} domain.BankAccount
// @Router /bank-accounts [post]
func (h *registryHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreateBankAccountRequest{}
	userID, ok := bindAndUser(c, logger, &req)
	if !ok {
		return
	}

	account, err := h.registryService.CreateBankAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

// getBankAccount godoc
// @Summary Get a bank account
// @Tags registry
// @Produce  json
// @Param   bankAccountID path string true "Bank account ID"
// @Success 200 {object} domain.BankAccount
// @Failure 404 {object} map[string]string "Bank account not found"
// @Router /bank-accounts/{bankAccountID} [get]
func (h *registryHandler) getBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	account, err := h.registryService.GetBankAccountByID(c.Request.Context(), c.Param("bankAccountID"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// listBankAccounts godoc
// @Summary List bank accounts
// @Tags registry
// @Produce  json
// @Success 200 {array} domain.BankAccount
// @Router /bank-accounts [get]
func (h *registryHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, offset, ok := listParams(c)
	if !ok {
		return
	}

	accounts, err := h.registryService.ListBankAccounts(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// deactivateBankAccount godoc
// @Summary Deactivate a bank account
// @Tags registry
// @Param   bankAccountID path string true "Bank account ID"
// @Success 204 "No Content"
// @Router /bank-accounts/{bankAccountID} [delete]
func (h *registryHandler) deactivateBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ref := domain.ContainerRef{Type: domain.ContainerBank, ID: c.Param("bankAccountID")}
	if err := h.registryService.DeactivateContainer(c.Request.Context(), ref, userID); err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// createAccount godoc
// @Summary Register an accounting account
// @Tags registry
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account"
// @Success 201 {object} domain.AccountingAccount
// @Router /accounts [post]
func (h *registryHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreateAccountRequest{}
	userID, ok := bindAndUser(c, logger, &req)
	if !ok {
		return
	}

	account, err := h.registryService.CreateAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

// getAccount godoc
// @Summary Get an accounting account
// @Tags registry
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} domain.AccountingAccount
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID} [get]
func (h *registryHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	account, err := h.registryService.GetAccountByID(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// listAccounts godoc
// @Summary List accounting accounts
// @Tags registry
// @Produce  json
// @Success 200 {array} domain.AccountingAccount
// @Router /accounts [get]
func (h *registryHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, offset, ok := listParams(c)
	if !ok {
		return
	}

	accounts, err := h.registryService.ListAccounts(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// linkContainer godoc
// @Summary Link an accounting account to its operational container
// @Tags registry
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   link body dto.LinkContainerRequest true "Container"
// @Success 200 {object} domain.AccountingAccount
// @Failure 409 {object} map[string]string "Container already linked"
// @Router /accounts/{accountID}/link [post]
func (h *registryHandler) linkContainer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.LinkContainerRequest{}
	userID, ok := bindAndUser(c, logger, &req)
	if !ok {
		return
	}

	account, err := h.registryService.LinkContainer(c.Request.Context(), c.Param("accountID"), req.Container.ToDomain(), userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// deactivateAccount godoc
// @Summary Deactivate an accounting account
// @Tags registry
// @Param   accountID path string true "Account ID"
// @Success 204 "No Content"
// @Router /accounts/{accountID} [delete]
func (h *registryHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.registryService.DeactivateAccount(c.Request.Context(), c.Param("accountID"), userID); err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// createCategory godoc
// @Summary Register a movement category
// @Tags registry
// @Accept  json
// @Produce  json
// @Param   category body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} domain.Category
// @Router /categories [post]
func (h *registryHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreateCategoryRequest{}
	userID, ok := bindAndUser(c, logger, &req)
	if !ok {
		return
	}

	category, err := h.registryService.CreateCategory(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// listCategories godoc
// @Summary List movement categories
// @Tags registry
// @Produce  json
// @Success 200 {array} domain.Category
// @Router /categories [get]
func (h *registryHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	categories, err := h.registryService.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// registerRegistryRoutes registers drawer, bank account, account and category routes
func registerRegistryRoutes(group *gin.RouterGroup, registryService portssvc.RegistrySvcFacade) {
	h := newRegistryHandler(registryService)

	drawers := group.Group("/drawers")
	{
		drawers.POST("", h.createDrawer)
		drawers.GET("", h.listDrawers)
		drawers.GET("/:drawerID", h.getDrawer)
		drawers.DELETE("/:drawerID", h.deactivateDrawer)
	}

	bankAccounts := group.Group("/bank-accounts")
	{
		bankAccounts.POST("", h.createBankAccount)
		bankAccounts.GET("", h.listBankAccounts)
		bankAccounts.GET("/:bankAccountID", h.getBankAccount)
		bankAccounts.DELETE("/:bankAccountID", h.deactivateBankAccount)
	}

	accounts := group.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.POST("/:accountID/link", h.linkContainer)
		accounts.DELETE("/:accountID", h.deactivateAccount)
	}

	categories := group.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
	}
}
