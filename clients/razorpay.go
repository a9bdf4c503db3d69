package clients

import (
	"github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// RazorpayClientWrapper abstracts the Razorpay operations the deposit flow
// needs, so handlers can be tested against a fake gateway.
type RazorpayClientWrapper interface {
	CreateOrder(data map[string]interface{}) (map[string]interface{}, error)
	VerifyWebhookSignature(body, signature, webhookSecret string) bool
}

// RazorpayClient implements RazorpayClientWrapper using the Razorpay SDK.
type RazorpayClient struct {
	Client *razorpay.Client
}

// NewRazorpayClient initializes the SDK client with API credentials.
func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		Client: razorpay.NewClient(keyID, keySecret),
	}
}

// CreateOrder creates a new order (amount in the smallest currency unit).
func (r *RazorpayClient) CreateOrder(data map[string]interface{}) (map[string]interface{}, error) {
	return r.Client.Order.Create(data, nil)
}

// VerifyWebhookSignature checks a webhook payload against its signature.
func (r *RazorpayClient) VerifyWebhookSignature(body, signature, webhookSecret string) bool {
	return utils.VerifyWebhookSignature(body, signature, webhookSecret)
}
