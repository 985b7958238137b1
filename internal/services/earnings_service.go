package services

import (
	"context"
	"fmt"
	"time"

	"sponsorhub/internal/apperrors"
	"sponsorhub/internal/models"
	"sponsorhub/internal/repositories/interfaces"
	"sponsorhub/internal/utils"
	"sponsorhub/pkg/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EarningsService applies the revenue split on top of the aggregator and runs
// the withdrawal lifecycle. Balances are always recomputed from bookings and
// completed withdrawals at read time; no stored balance exists anywhere.
type EarningsService interface {
	GetSponsorReport(ctx context.Context, sponsorID primitive.ObjectID, window models.TimeWindow) (*models.SponsorReport, error)
	CreateWithdrawal(ctx context.Context, sponsorID primitive.ObjectID, amount float64) (*models.WithdrawalRequest, error)
	ApproveWithdrawal(ctx context.Context, id primitive.ObjectID) (*models.WithdrawalRequest, error)
	CompleteWithdrawal(ctx context.Context, id primitive.ObjectID, reference string) (*models.WithdrawalRequest, error)
	RejectWithdrawal(ctx context.Context, id primitive.ObjectID, reason string) (*models.WithdrawalRequest, error)
	ListSponsorWithdrawals(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.WithdrawalRequest, error)
	ListWithdrawalsByStatus(ctx context.Context, status models.WithdrawalStatus, params *utils.PaginationParams) ([]*models.WithdrawalRequest, int64, error)
}

type earningsService struct {
	revenue        RevenueService
	sponsorRepo    interfaces.SponsorRepository
	withdrawalRepo interfaces.WithdrawalRepository
	notifications  NotificationService
	logger         *logger.Logger
}

func NewEarningsService(
	revenue RevenueService,
	sponsorRepo interfaces.SponsorRepository,
	withdrawalRepo interfaces.WithdrawalRepository,
	notifications NotificationService,
	log *logger.Logger,
) EarningsService {
	return &earningsService{
		revenue:        revenue,
		sponsorRepo:    sponsorRepo,
		withdrawalRepo: withdrawalRepo,
		notifications:  notifications,
		logger:         log,
	}
}

// GetSponsorReport builds the full earnings view for one sponsor. The
// withdrawn amount is all-time regardless of the requested window, so the
// available balance stays consistent with what was actually paid out.
func (s *earningsService) GetSponsorReport(ctx context.Context, sponsorID primitive.ObjectID, window models.TimeWindow) (*models.SponsorReport, error) {
	sponsor, err := s.sponsorRepo.GetByID(ctx, sponsorID)
	if err != nil {
		return nil, err
	}

	revenue, err := s.revenue.AggregateSponsor(ctx, sponsorID, window)
	if err != nil {
		return nil, err
	}

	withdrawn, err := s.withdrawalRepo.SumCompletedBySponsor(ctx, sponsorID)
	if err != nil {
		return nil, err
	}

	share := revenue.GrossRevenue * utils.SponsorShareRate
	fee := revenue.GrossRevenue * utils.PlatformFeeRate

	return &models.SponsorReport{
		ID:               sponsor.ID,
		Name:             sponsor.Name,
		Email:            sponsor.Email,
		VehicleCount:     len(revenue.VehicleStats),
		BookingsCount:    revenue.BookingsCount,
		RideHours:        revenue.RideHours,
		GrossRevenue:     revenue.GrossRevenue,
		SponsorShare:     share,
		PlatformFee:      fee,
		WithdrawnAmount:  withdrawn,
		AvailableBalance: share - withdrawn,
		Transactions:     revenue.Transactions,
		VehicleStats:     revenue.VehicleStats,
	}, nil
}

// CreateWithdrawal validates the request against the sponsor's current payout
// details and the recomputed all-time balance, then files a pending row with
// a snapshot of the payout destination.
func (s *earningsService) CreateWithdrawal(ctx context.Context, sponsorID primitive.ObjectID, amount float64) (*models.WithdrawalRequest, error) {
	if amount <= 0 {
		return nil, apperrors.NewValidationError("amount", "withdrawal amount must be positive")
	}

	sponsor, err := s.sponsorRepo.GetByID(ctx, sponsorID)
	if err != nil {
		return nil, err
	}

	method, err := payoutMethodFor(sponsor)
	if err != nil {
		return nil, err
	}

	report, err := s.GetSponsorReport(ctx, sponsorID, models.TimeWindow{})
	if err != nil {
		return nil, err
	}

	if amount > report.AvailableBalance {
		return nil, apperrors.NewValidationError("amount",
			fmt.Sprintf("requested %.2f exceeds available balance %.2f", amount, report.AvailableBalance))
	}

	request := &models.WithdrawalRequest{
		SponsorID: sponsorID,
		Amount:    amount,
		Method:    method,
		UPIID:     sponsor.UPIID,
	}
	if method == models.PayoutMethodBank {
		snapshot := *sponsor.Bank
		request.Bank = &snapshot
		request.UPIID = ""
	}

	if err := s.withdrawalRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"withdrawal_id": request.ID.Hex(),
		"sponsor_id":    sponsorID.Hex(),
		"amount":        amount,
		"method":        method,
	}).Info("Withdrawal request created")

	return request, nil
}

func payoutMethodFor(sponsor *models.Sponsor) (models.PayoutMethod, error) {
	if sponsor.Bank != nil {
		if sponsor.Bank.AccountNumber == "" || sponsor.Bank.IFSCCode == "" || sponsor.Bank.HolderName == "" {
			return "", apperrors.NewValidationError("bank", "bank details are incomplete")
		}
		return models.PayoutMethodBank, nil
	}
	if sponsor.UPIID != "" {
		return models.PayoutMethodUPI, nil
	}
	return "", apperrors.NewValidationError("payout_details", "no payout details on file")
}

func (s *earningsService) ApproveWithdrawal(ctx context.Context, id primitive.ObjectID) (*models.WithdrawalRequest, error) {
	err := s.withdrawalRepo.UpdateStatus(ctx, id,
		models.WithdrawalStatusPending, models.WithdrawalStatusApproved, nil)
	if err != nil {
		return nil, err
	}

	return s.withdrawalRepo.GetByID(ctx, id)
}

// CompleteWithdrawal records that the payout actually went out. This is the
// only transition that changes the available balance. Notification failures
// are logged and swallowed; the state change already happened.
func (s *earningsService) CompleteWithdrawal(ctx context.Context, id primitive.ObjectID, reference string) (*models.WithdrawalRequest, error) {
	if reference == "" {
		reference = uuid.New().String()
	}
	now := time.Now()

	err := s.withdrawalRepo.UpdateStatus(ctx, id,
		models.WithdrawalStatusApproved, models.WithdrawalStatusCompleted,
		map[string]interface{}{
			"reference":    reference,
			"processed_at": now,
		})
	if err != nil {
		return nil, err
	}

	request, err := s.withdrawalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sponsor, err := s.sponsorRepo.GetByID(ctx, request.SponsorID)
	if err != nil {
		s.logger.WithField("withdrawal_id", id.Hex()).WithError(err).
			Warn("Completed withdrawal but could not load sponsor for notification")
		return request, nil
	}

	s.notifications.NotifyWithdrawalCompleted(ctx, sponsor, &models.WithdrawalCompletedPayload{
		Amount:      request.Amount,
		Reference:   request.Reference,
		ProcessedAt: now,
		Method:      request.Method,
	})

	return request, nil
}

func (s *earningsService) RejectWithdrawal(ctx context.Context, id primitive.ObjectID, reason string) (*models.WithdrawalRequest, error) {
	err := s.withdrawalRepo.UpdateStatus(ctx, id,
		models.WithdrawalStatusPending, models.WithdrawalStatusRejected,
		map[string]interface{}{"rejection_reason": reason})
	if err != nil {
		return nil, err
	}

	return s.withdrawalRepo.GetByID(ctx, id)
}

func (s *earningsService) ListSponsorWithdrawals(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.WithdrawalRequest, error) {
	return s.withdrawalRepo.GetBySponsorID(ctx, sponsorID)
}

func (s *earningsService) ListWithdrawalsByStatus(ctx context.Context, status models.WithdrawalStatus, params *utils.PaginationParams) ([]*models.WithdrawalRequest, int64, error) {
	return s.withdrawalRepo.GetByStatus(ctx, status, params)
}
