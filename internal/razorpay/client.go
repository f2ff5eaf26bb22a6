package razorpay

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/patramstore/storefront-api/internal/config"
)

const baseURL = "https://api.razorpay.com/v1"

type Client struct {
	keyID      string
	keySecret  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Razorpay Orders API client
func NewClient(cfg config.RazorpayConfig, logger *zap.Logger) *Client {
	return &Client{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// orderRequest is the create-order payload. Amount is in paise.
type orderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// PaymentIntent is the gateway order created for an online checkout
type PaymentIntent struct {
	GatewayOrderID string `json:"id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	Status         string `json:"status"`
}

// CreateOrder creates a gateway order for the given rupee amount,
// using the internal order ID as the receipt.
func (c *Client) CreateOrder(amount float64, currency, orderID string) (*PaymentIntent, error) {
	if currency == "" {
		currency = "INR"
	}

	reqBody := orderRequest{
		Amount:   int64(math.Round(amount * 100)), // rupees to paise
		Currency: currency,
		Receipt:  orderID,
		Notes:    map[string]string{"orderId": orderID},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", baseURL+"/orders", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("razorpay API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var intent PaymentIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &intent, nil
}

// VerifySignature checks a checkout callback signature. The signature
// is HMAC-SHA256 of "<gatewayOrderID>|<paymentID>" keyed with the API
// secret.
func (c *Client) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
