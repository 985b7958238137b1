package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusApproved  WithdrawalStatus = "approved"
	WithdrawalStatusCompleted WithdrawalStatus = "completed"
	WithdrawalStatusRejected  WithdrawalStatus = "rejected"
)

// WithdrawalRequest is a sponsor-initiated payout. Payout details are copied
// from the sponsor profile at submission time, not referenced live. Only the
// completed state reduces the available balance.
type WithdrawalRequest struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SponsorID       primitive.ObjectID `json:"sponsor_id" bson:"sponsor_id" validate:"required"`
	Amount          float64            `json:"amount" bson:"amount" validate:"required,gt=0"`
	Method          PayoutMethod       `json:"method" bson:"method" validate:"required"`
	Bank            *BankDetails       `json:"bank,omitempty" bson:"bank,omitempty"`
	UPIID           string             `json:"upi_id" bson:"upi_id"`
	Status          WithdrawalStatus   `json:"status" bson:"status" default:"pending"`
	Reference       string             `json:"reference" bson:"reference"`
	RejectionReason string             `json:"rejection_reason" bson:"rejection_reason"`
	ProcessedAt     *time.Time         `json:"processed_at" bson:"processed_at"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}
