package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/hrms_ledger/internal/core/ports/services"
	"github.com/SscSPs/hrms_ledger/internal/dto"
	"github.com/SscSPs/hrms_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// referenceHandler serves accounts, categories and vendors.
type referenceHandler struct {
	referenceService portssvc.ReferenceSvcFacade
}

func newReferenceHandler(rs portssvc.ReferenceSvcFacade) *referenceHandler {
	return &referenceHandler{referenceService: rs}
}

// listAccounts godoc
// @Summary List active accounts
// @Tags reference
// @Produce  json
// @Success 200 {array} domain.Account
// @Failure 500 {object} map[string]string "Persistence failure"
// @Security BearerAuth
// @Router /accounting/accounts [get]
func (h *referenceHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accounts, err := h.referenceService.ListAccounts(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "listing accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// createAccount godoc
// @Summary Create an account
// @Tags reference
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} domain.Account
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Failure 500 {object} map[string]string "Persistence failure"
// @Security BearerAuth
// @Router /accounting/accounts [post]
func (h *referenceHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.referenceService.CreateAccount(c.Request.Context(), req, actorID(c))
	if err != nil {
		respondWithError(c, logger, err, "creating account")
		return
	}
	logger.Info("Account created successfully", slog.Int64("account_id", account.ID))
	c.JSON(http.StatusCreated, account)
}

// listCategories godoc
// @Summary List active categories
// @Tags reference
// @Produce  json
// @Success 200 {array} domain.Category
// @Failure 500 {object} map[string]string "Persistence failure"
// @Security BearerAuth
// @Router /accounting/categories [get]
func (h *referenceHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	categories, err := h.referenceService.ListCategories(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "listing categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// createCategory godoc
// @Summary Create a category
// @Tags reference
// @Accept  json
// @Produce  json
// @Param   category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} domain.Category
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Category already exists"
// @Failure 500 {object} map[string]string "Persistence failure"
// @Security BearerAuth
// @Router /accounting/categories [post]
func (h *referenceHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCategory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	category, err := h.referenceService.CreateCategory(c.Request.Context(), req, actorID(c))
	if err != nil {
		respondWithError(c, logger, err, "creating category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// listVendors godoc
// @Summary List active vendors
// @Tags reference
// @Produce  json
// @Success 200 {array} domain.Vendor
// @Failure 500 {object} map[string]string "Persistence failure"
// @Security BearerAuth
// @Router /accounting/vendors [get]
func (h *referenceHandler) listVendors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vendors, err := h.referenceService.ListVendors(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "listing vendors")
		return
	}
	c.JSON(http.StatusOK, vendors)
}

// createVendor godoc
// @Summary Create a vendor
// @Tags reference
// @Accept  json
// @Produce  json
// @Param   vendor body dto.CreateVendorRequest true "Vendor details"
// @Success 201 {object} domain.Vendor
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Vendor already exists"
// @Failure 500 {object} map[string]string "Persistence failure"
// @Security BearerAuth
// @Router /accounting/vendors [post]
func (h *referenceHandler) createVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateVendor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	vendor, err := h.referenceService.CreateVendor(c.Request.Context(), req, actorID(c))
	if err != nil {
		respondWithError(c, logger, err, "creating vendor")
		return
	}
	c.JSON(http.StatusCreated, vendor)
}
