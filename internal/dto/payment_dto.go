package dto

// PaymentWebhook is the billing provider's event envelope. The client
// reference carries our internal user id back to us.
type PaymentWebhook struct {
	Type string             `json:"type"`
	Data PaymentWebhookData `json:"data"`
}

type PaymentWebhookData struct {
	ClientReferenceID string `json:"client_reference_id"`
	SessionID         string `json:"session_id"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}
