package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PayoutMethod string

const (
	PayoutMethodBank PayoutMethod = "bank"
	PayoutMethodUPI  PayoutMethod = "upi"
)

// BankDetails is the bank payout destination. Withdrawal requests copy it as
// an immutable snapshot at submission time.
type BankDetails struct {
	AccountNumber string `json:"account_number" bson:"account_number" validate:"required"`
	IFSCCode      string `json:"ifsc_code" bson:"ifsc_code" validate:"required"`
	HolderName    string `json:"holder_name" bson:"holder_name" validate:"required"`
}

type Sponsor struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" validate:"required"`
	Email     string             `json:"email" bson:"email" validate:"required,email"`
	Phone     string             `json:"phone" bson:"phone"`
	Bank      *BankDetails       `json:"bank,omitempty" bson:"bank,omitempty"`
	UPIID     string             `json:"upi_id" bson:"upi_id"`
	FCMToken  string             `json:"fcm_token" bson:"fcm_token"`

	// Gateway-side payout identifiers, set when payout details are registered
	// with the payment gateway.
	PayoutCustomerID string `json:"payout_customer_id,omitempty" bson:"payout_customer_id,omitempty"`
	FundAccountID    string `json:"fund_account_id,omitempty" bson:"fund_account_id,omitempty"`

	IsActive  bool               `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
