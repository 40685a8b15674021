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
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	ledgerService  portssvc.LedgerReaderSvc
	posthog        *utils.PosthogClientWrapper
}

func newAccountHandler(as portssvc.AccountSvcFacade, ls portssvc.LedgerReaderSvc, posthog *utils.PosthogClientWrapper) *accountHandler {
	return &accountHandler{accountService: as, ledgerService: ls, posthog: posthog}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, h *accountHandler) {
	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("", h.createAccount)
		accounts.GET("/:accountNumber", h.getAccount)
		accounts.POST("/:accountNumber/deposit", h.deposit)
		accounts.POST("/:accountNumber/withdraw", h.withdraw)
		accounts.GET("/:accountNumber/transactions", h.listTransactions)
	}
	rg.GET("/pay/:accountNumber", h.getPayee)
}

// listAccounts godoc
// @Summary List accounts for the logged-in user
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccountsForUser(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts))
}

// createAccount godoc
// @Summary Open an additional account
// @Description Opens a zero-balance account of the given type. A user holds at most one account per type.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account type"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Account of this type already exists"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	accountType, err := domain.ParseAccountType(req.AccountType)
	if err != nil {
		respondWithError(c, err, "Invalid account type")
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), userID, accountType)
	if err != nil {
		respondWithError(c, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get one of the caller's accounts
// @Tags accounts
// @Produce json
// @Param accountNumber path string true "Account number"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountNumber} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetOwnedAccount(c.Request.Context(), userID, c.Param("accountNumber"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deposit godoc
// @Summary Deposit into an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param body body dto.MoneyRequest true "Amount"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountNumber}/deposit [post]
func (h *accountHandler) deposit(c *gin.Context) {
	h.moveCash(c, domain.Deposit)
}

// withdraw godoc
// @Summary Withdraw from an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param body body dto.MoneyRequest true "Amount"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Security BearerAuth
// @Router /accounts/{accountNumber}/withdraw [post]
func (h *accountHandler) withdraw(c *gin.Context) {
	h.moveCash(c, domain.Withdrawal)
}

func (h *accountHandler) moveCash(c *gin.Context, txType domain.TransactionType) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.MoneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for cash movement", slog.String("type", string(txType)), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	accountNumber := c.Param("accountNumber")
	var (
		txn *domain.Transaction
		err error
	)
	if txType == domain.Deposit {
		txn, err = h.accountService.Deposit(ctx, userID, accountNumber, req.Amount, req.Description)
	} else {
		txn, err = h.accountService.Withdraw(ctx, userID, accountNumber, req.Amount, req.Description)
	}
	if err != nil {
		respondWithError(c, err, "Failed to record "+string(txType))
		return
	}

	middleware.PosthogEvent(c, h.posthog, "cash_"+string(txType), map[string]any{"amount": txn.Amount.StringFixed(domain.AmountScale)})
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List an account's transactions
// @Description Newest first. Pass nextToken from the previous page to continue.
// @Tags accounts
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountNumber}/transactions [get]
func (h *accountHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	account, err := h.accountService.GetOwnedAccount(c.Request.Context(), userID, c.Param("accountNumber"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve account")
		return
	}

	txns, next, err := h.ledgerService.ListAccountTransactions(c.Request.Context(), account.AccountID, params.Limit, params.NextToken)
	if err != nil {
		respondWithError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, next))
}

// getPayee godoc
// @Summary Look up a payee
// @Description Public details of an account, used by "pay me" links and QR codes.
// @Tags accounts
// @Produce json
// @Param accountNumber path string true "Account number"
// @Success 200 {object} dto.PayeeResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /pay/{accountNumber} [get]
func (h *accountHandler) getPayee(c *gin.Context) {
	payee, err := h.accountService.GetPayee(c.Request.Context(), c.Param("accountNumber"))
	if err != nil {
		respondWithError(c, err, "Failed to look up payee")
		return
	}
	c.JSON(http.StatusOK, dto.ToPayeeResponse(payee))
}
