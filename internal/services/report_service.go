package services

import (
	"context"
	"time"

	"sponsorhub/internal/models"
	"sponsorhub/pkg/logger"

	"sponsorhub/internal/repositories/interfaces"
)

// ReportService builds the platform-wide rollup. It deliberately reuses the
// per-sponsor earnings path so the admin totals are always the sum of what
// each sponsor sees on their own dashboard.
type ReportService interface {
	GetPlatformReport(ctx context.Context, window models.TimeWindow) (*models.PlatformReport, error)
	GetSponsorReport(ctx context.Context, sponsorID string, window models.TimeWindow) (*models.SponsorReport, error)
}

type reportService struct {
	earnings    EarningsService
	sponsorRepo interfaces.SponsorRepository
	logger      *logger.Logger
}

func NewReportService(
	earnings EarningsService,
	sponsorRepo interfaces.SponsorRepository,
	log *logger.Logger,
) ReportService {
	return &reportService{
		earnings:    earnings,
		sponsorRepo: sponsorRepo,
		logger:      log,
	}
}

// GetPlatformReport aggregates every sponsor through the shared earnings
// path. A failure for any sponsor fails the whole report; partial rollups
// would silently understate platform totals.
func (s *reportService) GetPlatformReport(ctx context.Context, window models.TimeWindow) (*models.PlatformReport, error) {
	sponsors, err := s.sponsorRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.PlatformReport{
		Sponsors:    make([]*models.SponsorReport, 0, len(sponsors)),
		GeneratedAt: time.Now(),
	}

	for _, sponsor := range sponsors {
		sponsorReport, err := s.earnings.GetSponsorReport(ctx, sponsor.ID, window)
		if err != nil {
			s.logger.WithField("sponsor_id", sponsor.ID.Hex()).WithError(err).
				Error("Failed to build sponsor report for platform rollup")
			return nil, err
		}

		report.TotalRevenue += sponsorReport.GrossRevenue
		report.SponsorShare += sponsorReport.SponsorShare
		report.PlatformFee += sponsorReport.PlatformFee
		report.TotalPaid += sponsorReport.WithdrawnAmount
		report.PendingBalance += sponsorReport.AvailableBalance
		report.Sponsors = append(report.Sponsors, sponsorReport)
	}

	report.SponsorCount = len(report.Sponsors)

	return report, nil
}

func (s *reportService) GetSponsorReport(ctx context.Context, sponsorID string, window models.TimeWindow) (*models.SponsorReport, error) {
	id, err := parseObjectID(sponsorID, "sponsor_id")
	if err != nil {
		return nil, err
	}

	return s.earnings.GetSponsorReport(ctx, id, window)
}
