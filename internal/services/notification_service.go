package services

import (
	"context"
	"fmt"

	"sponsorhub/internal/models"
	"sponsorhub/internal/utils"
	"sponsorhub/pkg/logger"
	"sponsorhub/pkg/mail"
	"sponsorhub/pkg/push"
	"sponsorhub/pkg/sms"
)

// NotificationService fans sponsor-facing events out over email, SMS and
// push. Delivery is best-effort on every channel: a failed send is logged and
// swallowed so it can never roll back or block the state change that
// triggered it.
type NotificationService interface {
	NotifyWithdrawalCompleted(ctx context.Context, sponsor *models.Sponsor, payload *models.WithdrawalCompletedPayload)
	NotifyVehicleApproved(ctx context.Context, sponsor *models.Sponsor, payload *models.VehicleReviewedPayload)
	NotifyVehicleRejected(ctx context.Context, sponsor *models.Sponsor, payload *models.VehicleReviewedPayload)
}

type notificationService struct {
	mailer      mail.Mailer
	smsProvider sms.SMSProvider
	pushService push.PushProvider
	smsFrom     string
	logger      *logger.Logger
}

func NewNotificationService(
	mailer mail.Mailer,
	smsProvider sms.SMSProvider,
	pushService push.PushProvider,
	smsFrom string,
	log *logger.Logger,
) NotificationService {
	return &notificationService{
		mailer:      mailer,
		smsProvider: smsProvider,
		pushService: pushService,
		smsFrom:     smsFrom,
		logger:      log,
	}
}

func (s *notificationService) NotifyWithdrawalCompleted(ctx context.Context, sponsor *models.Sponsor, payload *models.WithdrawalCompletedPayload) {
	subject := "Your withdrawal has been processed"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your withdrawal of ₹%.2f has been processed via %s.</p><p>Reference: %s</p>",
		sponsor.Name, payload.Amount, payload.Method, payload.Reference,
	)
	s.sendEmail(sponsor, string(models.NotificationWithdrawalCompleted), subject, body)

	s.sendSMS(ctx, sponsor, string(models.NotificationWithdrawalCompleted), fmt.Sprintf(
		"Your withdrawal of Rs %.2f has been processed. Ref: %s",
		payload.Amount, payload.Reference,
	))

	s.sendPush(ctx, sponsor, string(models.NotificationWithdrawalCompleted),
		"Withdrawal processed",
		fmt.Sprintf("₹%.2f has been sent to your %s account.", payload.Amount, payload.Method),
		map[string]string{
			"kind":         string(models.NotificationWithdrawalCompleted),
			"reference":    payload.Reference,
			"processed_at": utils.FormatTimeISO(payload.ProcessedAt),
		})
}

func (s *notificationService) NotifyVehicleApproved(ctx context.Context, sponsor *models.Sponsor, payload *models.VehicleReviewedPayload) {
	subject := "Your vehicle listing is live"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your %s <b>%s</b> has been approved and is now listed for rentals (vehicle #%d).</p>",
		sponsor.Name, payload.Category, payload.VehicleName, payload.VehicleID,
	)
	s.sendEmail(sponsor, string(models.NotificationVehicleApproved), subject, body)

	s.sendPush(ctx, sponsor, string(models.NotificationVehicleApproved),
		"Vehicle approved",
		fmt.Sprintf("%s is now listed for rentals.", payload.VehicleName),
		map[string]string{
			"kind":       string(models.NotificationVehicleApproved),
			"vehicle_id": fmt.Sprintf("%d", payload.VehicleID),
		})
}

func (s *notificationService) NotifyVehicleRejected(ctx context.Context, sponsor *models.Sponsor, payload *models.VehicleReviewedPayload) {
	subject := "Your vehicle listing was not approved"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your %s <b>%s</b> was not approved.</p><p>Reason: %s</p>",
		sponsor.Name, payload.Category, payload.VehicleName, payload.Reason,
	)
	s.sendEmail(sponsor, string(models.NotificationVehicleRejected), subject, body)

	s.sendPush(ctx, sponsor, string(models.NotificationVehicleRejected),
		"Vehicle not approved",
		fmt.Sprintf("%s was not approved. Reason: %s", payload.VehicleName, payload.Reason),
		map[string]string{
			"kind": string(models.NotificationVehicleRejected),
		})
}

func (s *notificationService) sendEmail(sponsor *models.Sponsor, kind, subject, body string) {
	if s.mailer == nil || sponsor.Email == "" {
		return
	}
	if err := s.mailer.Send(sponsor.Email, subject, body); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"sponsor_id": sponsor.ID.Hex(),
			"kind":       kind,
		}).WithError(err).Warn("Failed to send notification email")
	}
}

func (s *notificationService) sendSMS(ctx context.Context, sponsor *models.Sponsor, kind, message string) {
	if s.smsProvider == nil || sponsor.Phone == "" {
		return
	}
	_, err := s.smsProvider.SendSMS(ctx, &sms.SMSRequest{
		To:      sponsor.Phone,
		From:    s.smsFrom,
		Message: message,
		Type:    "transactional",
	})
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"sponsor_id": sponsor.ID.Hex(),
			"kind":       kind,
		}).WithError(err).Warn("Failed to send notification SMS")
	}
}

func (s *notificationService) sendPush(ctx context.Context, sponsor *models.Sponsor, kind, title, body string, data map[string]string) {
	if s.pushService == nil || sponsor.FCMToken == "" {
		return
	}
	_, err := s.pushService.SendNotification(ctx, &push.NotificationRequest{
		Token: sponsor.FCMToken,
		Title: title,
		Body:  body,
		Data:  data,
	})
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"sponsor_id": sponsor.ID.Hex(),
			"kind":       kind,
		}).WithError(err).Warn("Failed to send push notification")
	}
}
