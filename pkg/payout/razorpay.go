package payout

import (
	"context"
	"fmt"

	"github.com/razorpay/razorpay-go"
)

// Provider registers payout destinations with the payment gateway so
// settlement can reference a gateway-side fund account instead of raw bank
// details.
type Provider interface {
	RegisterDestination(ctx context.Context, request *DestinationRequest) (*Destination, error)
}

type DestinationRequest struct {
	CustomerID string `json:"customer_id,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`

	Method        string `json:"method"` // bank_account or vpa
	AccountNumber string `json:"account_number,omitempty"`
	IFSCCode      string `json:"ifsc_code,omitempty"`
	HolderName    string `json:"holder_name,omitempty"`
	VPA           string `json:"vpa,omitempty"`
}

type Destination struct {
	CustomerID    string `json:"customer_id"`
	FundAccountID string `json:"fund_account_id"`
}

const (
	MethodBankAccount = "bank_account"
	MethodVPA         = "vpa"
)

type RazorpayProvider struct {
	client *razorpay.Client
}

func NewRazorpayProvider(keyID, keySecret string) *RazorpayProvider {
	return &RazorpayProvider{
		client: razorpay.NewClient(keyID, keySecret),
	}
}

// RegisterDestination creates (or reuses) a gateway customer and attaches a
// fund account for the given payout method.
func (r *RazorpayProvider) RegisterDestination(ctx context.Context, request *DestinationRequest) (*Destination, error) {
	customerID := request.CustomerID
	if customerID == "" {
		customerData := map[string]interface{}{
			"name":          request.Name,
			"email":         request.Email,
			"contact":       request.Phone,
			"fail_existing": "0",
		}

		customer, err := r.client.Customer.Create(customerData, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create customer: %w", err)
		}
		customerID = customer["id"].(string)
	}

	fundAccountData := map[string]interface{}{
		"customer_id":  customerID,
		"account_type": request.Method,
	}

	switch request.Method {
	case MethodBankAccount:
		fundAccountData["bank_account"] = map[string]interface{}{
			"name":           request.HolderName,
			"ifsc":           request.IFSCCode,
			"account_number": request.AccountNumber,
		}
	case MethodVPA:
		fundAccountData["vpa"] = map[string]interface{}{
			"address": request.VPA,
		}
	default:
		return nil, fmt.Errorf("unsupported payout method: %s", request.Method)
	}

	fundAccount, err := r.client.FundAccount.Create(fundAccountData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create fund account: %w", err)
	}

	return &Destination{
		CustomerID:    customerID,
		FundAccountID: fundAccount["id"].(string),
	}, nil
}
