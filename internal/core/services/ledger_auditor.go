package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/quantum_bank/internal/core/domain"
	portssvc "github.com/SscSPs/quantum_bank/internal/core/ports/services"
	"github.com/SscSPs/quantum_bank/internal/middleware"
)

// LedgerAuditor re-verifies the chain on a fixed interval and reports the outcome.
type LedgerAuditor struct {
	verifier portssvc.LedgerVerifierSvc
	interval time.Duration
	logger   *slog.Logger
	onResult func(*domain.LedgerVerification)
}

// NewLedgerAuditor creates an auditor. onResult may be nil.
func NewLedgerAuditor(verifier portssvc.LedgerVerifierSvc, interval time.Duration, logger *slog.Logger, onResult func(*domain.LedgerVerification)) *LedgerAuditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerAuditor{
		verifier: verifier,
		interval: interval,
		logger:   logger.With(slog.String("component", "ledger_auditor")),
		onResult: onResult,
	}
}

// Run blocks until ctx is cancelled. A non-positive interval disables the auditor.
func (a *LedgerAuditor) Run(ctx context.Context) {
	if a.interval <= 0 {
		a.logger.Info("Ledger auditor disabled")
		return
	}

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.logger.Info("Ledger auditor started", slog.Duration("interval", a.interval))
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Ledger auditor stopped")
			return
		case <-ticker.C:
			a.AuditOnce(ctx)
		}
	}
}

// AuditOnce runs a single verification pass.
func (a *LedgerAuditor) AuditOnce(ctx context.Context) *domain.LedgerVerification {
	ctx = middleware.WithLogger(ctx, a.logger)

	result, err := a.verifier.VerifyLedger(ctx)
	if err != nil {
		a.logger.Error("Ledger audit could not complete", slog.String("error", err.Error()))
		return nil
	}
	if result.Valid && result.TipMatches {
		a.logger.Info("Ledger audit passed", slog.Int64("entries_checked", result.EntriesChecked))
	}
	if a.onResult != nil {
		a.onResult(result)
	}
	return result
}
