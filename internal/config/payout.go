package config

type PayoutConfig struct {
	Provider string          `yaml:"provider"`
	Razorpay *RazorpayConfig `yaml:"razorpay"`
	Currency string          `yaml:"currency"`
}

type RazorpayConfig struct {
	KeyID     string `yaml:"key_id"`
	KeySecret string `yaml:"key_secret"`
}

func loadPayoutConfig() *PayoutConfig {
	return &PayoutConfig{
		Provider: getEnv("PAYOUT_PROVIDER", "razorpay"),
		Razorpay: &RazorpayConfig{
			KeyID:     getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
		},
		Currency: getEnv("PAYOUT_CURRENCY", "INR"),
	}
}
