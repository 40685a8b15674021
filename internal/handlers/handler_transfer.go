package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/quantum_bank/internal/core/domain"
	portssvc "github.com/SscSPs/quantum_bank/internal/core/ports/services"
	"github.com/SscSPs/quantum_bank/internal/dto"
	"github.com/SscSPs/quantum_bank/internal/middleware"
	"github.com/SscSPs/quantum_bank/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

type transferHandler struct {
	accountService  portssvc.AccountReaderSvc
	transferService portssvc.TransferSvc
	ledgerService   portssvc.LedgerReaderSvc
	posthog         *utils.PosthogClientWrapper
}

func newTransferHandler(as portssvc.AccountReaderSvc, ts portssvc.TransferSvc, ls portssvc.LedgerReaderSvc, posthog *utils.PosthogClientWrapper) *transferHandler {
	return &transferHandler{accountService: as, transferService: ts, ledgerService: ls, posthog: posthog}
}

func registerTransferRoutes(rg *gin.RouterGroup, h *transferHandler, transferLimiter *limiter.Limiter) {
	rg.POST("/transfers", middleware.RateLimit(transferLimiter, middleware.UserOrIPKey), h.createTransfer)
	rg.GET("/transactions/:transactionID", h.getTransaction)
}

// createTransfer godoc
// @Summary Transfer money
// @Description Moves money from one of the caller's accounts to a recipient identified by account number, email or username.
// @Tags transfers
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Recipient not found"
// @Failure 409 {object} ErrorResponse "Concurrency conflict, retry later"
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Failure 429 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	from, err := h.accountService.GetOwnedAccount(c.Request.Context(), userID, req.FromAccountNumber)
	if err != nil {
		respondWithError(c, err, "Failed to load source account")
		return
	}

	txn, err := h.transferService.Transfer(c.Request.Context(), from.AccountID, req.Recipient, req.Amount, req.Note)
	if err != nil {
		respondWithError(c, err, "Transfer failed")
		return
	}

	middleware.PosthogEvent(c, h.posthog, "transfer_completed", map[string]any{"amount": txn.Amount.StringFixed(domain.AmountScale)})
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Returns a ledger entry that involves one of the caller's accounts.
// @Tags transfers
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transferHandler) getTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), userID, c.Param("transactionID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
