package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/quantum_bank/internal/core/ports/services"
	"github.com/SscSPs/quantum_bank/internal/dto"
	"github.com/gin-gonic/gin"
)

type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &ledgerHandler{ledgerService: ledgerService}

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/verify", h.verify)
		ledger.GET("/tip", h.tip)
	}
}

// verify godoc
// @Summary Verify the ledger
// @Description Walks the whole hash chain. A broken chain is reported in the body with status 200.
// @Tags ledger
// @Produce json
// @Success 200 {object} domain.LedgerVerification
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/verify [get]
func (h *ledgerHandler) verify(c *gin.Context) {
	result, err := h.ledgerService.VerifyLedger(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to verify ledger")
		return
	}
	c.JSON(http.StatusOK, result)
}

// tip godoc
// @Summary Get the chain head
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.LedgerTipResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/tip [get]
func (h *ledgerHandler) tip(c *gin.Context) {
	tip, err := h.ledgerService.GetLedgerTip(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to read ledger tip")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerTipResponse(tip))
}
