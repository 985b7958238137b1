package services

import (
	"context"
	"strings"

	"sponsorhub/internal/apperrors"
	"sponsorhub/internal/models"
	"sponsorhub/internal/repositories/interfaces"
	"sponsorhub/pkg/logger"
	"sponsorhub/pkg/payout"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RegisterSponsorInput struct {
	Name  string
	Email string
	Phone string
}

type PayoutDetailsInput struct {
	Bank  *models.BankDetails
	UPIID string
}

// SponsorService covers the sponsor profile surface: registration, payout
// details and the combined views the portal renders.
type SponsorService interface {
	Register(ctx context.Context, input *RegisterSponsorInput) (*models.Sponsor, error)
	GetProfile(ctx context.Context, sponsorID primitive.ObjectID) (*models.Sponsor, error)
	UpdateProfile(ctx context.Context, sponsorID primitive.ObjectID, updates map[string]interface{}) (*models.Sponsor, error)
	UpdatePayoutDetails(ctx context.Context, sponsorID primitive.ObjectID, input *PayoutDetailsInput) (*models.Sponsor, error)
	UpdateFCMToken(ctx context.Context, sponsorID primitive.ObjectID, token string) error
	ListVehicles(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.RegistryEntry, error)
	ListBookings(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.Booking, error)
	Dashboard(ctx context.Context, sponsorID primitive.ObjectID, window models.TimeWindow) (*models.SponsorReport, error)
}

type sponsorService struct {
	sponsorRepo interfaces.SponsorRepository
	registry    RegistryService
	revenue     RevenueService
	earnings    EarningsService
	payout      payout.Provider
	logger      *logger.Logger
}

func NewSponsorService(
	sponsorRepo interfaces.SponsorRepository,
	registry RegistryService,
	revenue RevenueService,
	earnings EarningsService,
	payoutProvider payout.Provider,
	log *logger.Logger,
) SponsorService {
	return &sponsorService{
		sponsorRepo: sponsorRepo,
		registry:    registry,
		revenue:     revenue,
		earnings:    earnings,
		payout:      payoutProvider,
		logger:      log,
	}
}

func (s *sponsorService) Register(ctx context.Context, input *RegisterSponsorInput) (*models.Sponsor, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, apperrors.NewValidationError("email", "email is required")
	}

	if existing, err := s.sponsorRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.NewValidationError("email", "a sponsor with this email already exists")
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}

	sponsor := &models.Sponsor{
		Name:     input.Name,
		Email:    email,
		Phone:    input.Phone,
		IsActive: true,
	}

	if err := s.sponsorRepo.Create(ctx, sponsor); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"sponsor_id": sponsor.ID.Hex(),
		"email":      sponsor.Email,
	}).Info("Sponsor registered")

	return sponsor, nil
}

func (s *sponsorService) GetProfile(ctx context.Context, sponsorID primitive.ObjectID) (*models.Sponsor, error) {
	return s.sponsorRepo.GetByID(ctx, sponsorID)
}

func (s *sponsorService) UpdateProfile(ctx context.Context, sponsorID primitive.ObjectID, updates map[string]interface{}) (*models.Sponsor, error) {
	allowed := map[string]bool{"name": true, "phone": true}
	filtered := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if allowed[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil, apperrors.NewValidationError("updates", "no updatable fields provided")
	}

	if err := s.sponsorRepo.Update(ctx, sponsorID, filtered); err != nil {
		return nil, err
	}

	return s.sponsorRepo.GetByID(ctx, sponsorID)
}

// UpdatePayoutDetails stores the destination on the profile and registers it
// with the payment gateway. Gateway registration is best-effort: its failure
// is logged but never blocks saving the details, since withdrawals validate
// against the profile snapshot, not the gateway.
func (s *sponsorService) UpdatePayoutDetails(ctx context.Context, sponsorID primitive.ObjectID, input *PayoutDetailsInput) (*models.Sponsor, error) {
	if input.Bank == nil && input.UPIID == "" {
		return nil, apperrors.NewValidationError("payout_details", "either bank details or a UPI id is required")
	}
	if input.Bank != nil {
		if input.Bank.AccountNumber == "" || input.Bank.IFSCCode == "" || input.Bank.HolderName == "" {
			return nil, apperrors.NewValidationError("bank", "account number, IFSC code and holder name are all required")
		}
	}

	sponsor, err := s.sponsorRepo.GetByID(ctx, sponsorID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"bank":   input.Bank,
		"upi_id": input.UPIID,
	}

	if s.payout != nil {
		destination, regErr := s.registerWithGateway(ctx, sponsor, input)
		if regErr != nil {
			s.logger.WithField("sponsor_id", sponsorID.Hex()).WithError(regErr).
				Warn("Failed to register payout destination with gateway")
		} else {
			updates["payout_customer_id"] = destination.CustomerID
			updates["fund_account_id"] = destination.FundAccountID
		}
	}

	if err := s.sponsorRepo.Update(ctx, sponsorID, updates); err != nil {
		return nil, err
	}

	return s.sponsorRepo.GetByID(ctx, sponsorID)
}

func (s *sponsorService) registerWithGateway(ctx context.Context, sponsor *models.Sponsor, input *PayoutDetailsInput) (*payout.Destination, error) {
	request := &payout.DestinationRequest{
		CustomerID: sponsor.PayoutCustomerID,
		Name:       sponsor.Name,
		Email:      sponsor.Email,
		Phone:      sponsor.Phone,
	}

	if input.Bank != nil {
		request.Method = payout.MethodBankAccount
		request.AccountNumber = input.Bank.AccountNumber
		request.IFSCCode = input.Bank.IFSCCode
		request.HolderName = input.Bank.HolderName
	} else {
		request.Method = payout.MethodVPA
		request.VPA = input.UPIID
	}

	return s.payout.RegisterDestination(ctx, request)
}

func (s *sponsorService) UpdateFCMToken(ctx context.Context, sponsorID primitive.ObjectID, token string) error {
	return s.sponsorRepo.Update(ctx, sponsorID, map[string]interface{}{"fcm_token": token})
}

func (s *sponsorService) ListVehicles(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.RegistryEntry, error) {
	return s.registry.ResolveSponsorVehicles(ctx, sponsorID)
}

func (s *sponsorService) ListBookings(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.Booking, error) {
	return s.revenue.MatchedBookings(ctx, sponsorID)
}

func (s *sponsorService) Dashboard(ctx context.Context, sponsorID primitive.ObjectID, window models.TimeWindow) (*models.SponsorReport, error) {
	return s.earnings.GetSponsorReport(ctx, sponsorID, window)
}
