package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/hrms_ledger/internal/core/ports/services"
	"github.com/SscSPs/hrms_ledger/internal/dto"
	"github.com/SscSPs/hrms_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for ledger transactions and the monthly summary.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// createTransaction godoc
// @Summary Post a ledger transaction
// @Description Validates a balanced set of entries and records the transaction with them
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction with entries"
// @Success 201 {object} dto.CreateTransactionResponse
// @Failure 400 {object} map[string]string "Invalid entry or unbalanced transaction"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Persistence failure"
// @Security BearerAuth
// @Router /accounting/transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create transaction", slog.String("date", req.Date), slog.Int("entries", len(req.Entries)))

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), req, actorID(c))
	if err != nil {
		respondWithError(c, logger, err, "creating transaction")
		return
	}

	logger.Info("Transaction created successfully", slog.Int64("transaction_id", txn.ID), slog.String("number", txn.Number))
	c.JSON(http.StatusCreated, dto.CreateTransactionResponse{
		Success:       true,
		TransactionID: txn.ID,
		Number:        txn.Number,
	})
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Description Retrieves one transaction with its entries
// @Tags transactions
// @Produce  json
// @Param   transactionID path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid transaction ID"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Persistence failure"
// @Security BearerAuth
// @Router /accounting/transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID, err := strconv.ParseInt(c.Param("transactionID"), 10, 64)
	if err != nil || transactionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		respondWithError(c, logger, err, "getting transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists transactions newest first with their entries, optionally filtered by date range and status
// @Tags transactions
// @Produce  json
// @Param   startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   endDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Param   status query string false "draft or posted"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Persistence failure"
// @Security BearerAuth
// @Router /accounting/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "listing transactions")
		return
	}

	logger.Debug("Transactions listed", slog.Int("count", len(txns)))
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// getSummary godoc
// @Summary Monthly summary
// @Description Aggregates posted transactions for a calendar month with per-category totals
// @Tags reports
// @Produce  json
// @Param   month query int true "Month (1-12)"
// @Param   year query int true "Four digit year"
// @Success 200 {object} domain.MonthlySummary
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 500 {object} map[string]string "Persistence failure"
// @Security BearerAuth
// @Router /accounting/summary [get]
func (h *transactionHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for GetSummary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.transactionService.GetSummary(c.Request.Context(), params.Month, params.Year)
	if err != nil {
		respondWithError(c, logger, err, "building summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
