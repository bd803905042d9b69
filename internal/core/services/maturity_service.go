package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aurumworks/bullion_ledger_app/internal/apperrors"
	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	portsrepo "github.com/aurumworks/bullion_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/aurumworks/bullion_ledger_app/internal/core/ports/services"
	"github.com/aurumworks/bullion_ledger_app/internal/middleware"
)

// maturityService is the time-triggered sweep over pending PDC schedules.
// It is driven by an external scheduler and guarantees only that running
// it twice over the same window changes nothing the second time.
type maturityService struct {
	entryRepo    portsrepo.EntryRepositoryFacade
	registryRepo portsrepo.RegistryRepositoryFacade
	pdcRepo      portsrepo.PDCRepositoryFacade
}

// NewMaturityService creates a new MaturityService.
func NewMaturityService(
	entryRepo portsrepo.EntryRepositoryFacade,
	registryRepo portsrepo.RegistryRepositoryFacade,
	pdcRepo portsrepo.PDCRepositoryFacade,
) portssvc.MaturitySvcFacade {
	return &maturityService{
		entryRepo:    entryRepo,
		registryRepo: registryRepo,
		pdcRepo:      pdcRepo,
	}
}

var _ portssvc.MaturitySvcFacade = (*maturityService)(nil)

// ProcessMaturedPDCs clears every pending schedule whose maturity posting
// date has arrived. Each schedule is posted independently; one failure is
// collected and the sweep moves on.
func (s *maturityService) ProcessMaturedPDCs(ctx context.Context, triggeredBy string) (*domain.MaturityResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	due, err := s.pdcRepo.FindPendingDue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load due PDC schedules: %w", err)
	}

	result := &domain.MaturityResult{}
	for _, schedule := range due {
		if err := s.matureOne(ctx, schedule, now, triggeredBy, result); err != nil {
			logger.Warn("Failed to mature PDC schedule", slog.String("schedule_id", schedule.ScheduleID), slog.String("voucher_code", schedule.VoucherCode), slog.String("error", err.Error()))
			result.Errors = append(result.Errors, fmt.Sprintf("schedule %s (voucher %s): %v", schedule.ScheduleID, schedule.VoucherCode, err))
		}
	}

	logger.Info("PDC maturity sweep finished", slog.Int("due", len(due)), slog.Int("processed", result.Processed), slog.Int("skipped", result.Skipped), slog.Int("errors", len(result.Errors)))
	return result, nil
}

// matureOne re-validates one due schedule against the live entry and, if
// it still holds money, posts the clearing. Schedules whose entry or line
// moved on since they were read are skipped; a schedule whose maturity
// rows already exist is skipped and its status reconciled.
func (s *maturityService) matureOne(ctx context.Context, schedule domain.PDCSchedule, now time.Time, triggeredBy string, result *domain.MaturityResult) error {
	entry, err := s.entryRepo.FindEntryByID(ctx, schedule.EntryID)
	if err != nil {
		return fmt.Errorf("failed to find entry %s: %w", schedule.EntryID, err)
	}
	if entry.Status != domain.Approved {
		result.Skipped++
		return nil
	}
	line := entry.CashItemByID(schedule.CashItemID)
	if line == nil || !line.IsPDC || line.PDCStatus != domain.PDCPending {
		result.Skipped++
		return nil
	}

	matured, err := s.registryRepo.HasMaturityRow(ctx, schedule.VoucherCode, schedule.CashItemID)
	if err != nil {
		return fmt.Errorf("failed to check maturity rows for voucher %s: %w", schedule.VoucherCode, err)
	}
	if matured {
		// A previous sweep posted the money movement but did not finish
		// resolving the schedule. Close the bookkeeping without reposting.
		reconcile := domain.Posting{
			ScheduleStatusUpdates: []domain.ScheduleStatusUpdate{{ScheduleID: schedule.ScheduleID, Status: domain.PDCCleared, ActorID: triggeredBy}},
			CashItemPDCUpdates:    []domain.CashItemPDCUpdate{{EntryID: schedule.EntryID, CashItemID: schedule.CashItemID, Status: domain.PDCCleared, IsPDC: true}},
		}
		if err := s.registryRepo.ApplyPosting(ctx, reconcile); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				result.Skipped++
				return nil
			}
			return fmt.Errorf("failed to reconcile matured schedule: %w", err)
		}
		result.Skipped++
		return nil
	}

	txnID, err := s.registryRepo.NextTransactionID(ctx)
	if err != nil {
		return fmt.Errorf("failed to allocate transaction id: %w", err)
	}

	posting := buildPDCClearPosting(&schedule, txnID, now, triggeredBy)
	posting.ScheduleStatusUpdates = append(posting.ScheduleStatusUpdates, domain.ScheduleStatusUpdate{
		ScheduleID: schedule.ScheduleID,
		Status:     domain.PDCCleared,
		ActorID:    triggeredBy,
	})
	posting.CashItemPDCUpdates = append(posting.CashItemPDCUpdates, domain.CashItemPDCUpdate{
		EntryID:    schedule.EntryID,
		CashItemID: schedule.CashItemID,
		Status:     domain.PDCCleared,
		IsPDC:      true,
	})

	if err := s.registryRepo.ApplyPosting(ctx, posting); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// A concurrent sweep or manual clear resolved the schedule
			// between our recheck and the posting; its transaction won.
			result.Skipped++
			return nil
		}
		return fmt.Errorf("failed to apply maturity posting: %w", err)
	}
	result.Processed++
	return nil
}
