package dto

// CreatePaymentIntentRequest payload.
type CreatePaymentIntentRequest struct {
	Amount float64 `json:"amount"`
}

// PaymentIntentResponse carries the client secret for frontend confirmation.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CheckoutResponse carries the hosted checkout redirect URL.
type CheckoutResponse struct {
	URL string `json:"url"`
}
