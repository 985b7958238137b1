package models

import "time"

type NotificationKind string

const (
	NotificationWithdrawalCompleted NotificationKind = "withdrawal_completed"
	NotificationVehicleApproved     NotificationKind = "vehicle_approved"
	NotificationVehicleRejected     NotificationKind = "vehicle_rejected"
)

type WithdrawalCompletedPayload struct {
	Amount      float64      `json:"amount"`
	Reference   string       `json:"reference"`
	ProcessedAt time.Time    `json:"processed_at"`
	Method      PayoutMethod `json:"method"`
}

type VehicleReviewedPayload struct {
	VehicleName string          `json:"vehicle_name"`
	Category    VehicleCategory `json:"category"`
	VehicleID   int64           `json:"vehicle_id,omitempty"`
	Reason      string          `json:"reason,omitempty"`
}
