package payment

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const (
	StatusSuccess = "success"

	// Value of CheckoutFormResult.PaymentStatus on a captured payment.
	PaymentStatusSuccess = "SUCCESS"

	initializePath = "/payment/iyzipos/checkoutform/initialize/auth/ecom"
	retrievePath   = "/payment/iyzipos/checkoutform/auth/ecom/detail"
)

// IyzicoService talks to the Iyzico checkout-form REST API. It covers the
// two operations the purchase flow needs: initializing a hosted checkout
// form and retrieving the result for a callback token.
type IyzicoService struct {
	apiKey     string
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewIyzicoService(apiKey, secretKey, baseURL string) *IyzicoService {
	return &IyzicoService{
		apiKey:    apiKey,
		secretKey: secretKey,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type Buyer struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Surname             string `json:"surname"`
	GsmNumber           string `json:"gsmNumber,omitempty"`
	Email               string `json:"email"`
	IdentityNumber      string `json:"identityNumber"`
	RegistrationAddress string `json:"registrationAddress"`
	City                string `json:"city"`
	Country             string `json:"country"`
	IP                  string `json:"ip,omitempty"`
}

type Address struct {
	ContactName string `json:"contactName"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Description string `json:"address"`
}

type BasketItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category1"`
	ItemType string `json:"itemType"`
	Price    string `json:"price"`
}

type CheckoutFormRequest struct {
	Locale              string       `json:"locale"`
	ConversationID      string       `json:"conversationId"`
	Price               string       `json:"price"`
	PaidPrice           string       `json:"paidPrice"`
	Currency            string       `json:"currency"`
	BasketID            string       `json:"basketId"`
	PaymentGroup        string       `json:"paymentGroup"`
	CallbackURL         string       `json:"callbackUrl"`
	EnabledInstallments []int        `json:"enabledInstallments"`
	Buyer               Buyer        `json:"buyer"`
	ShippingAddress     Address      `json:"shippingAddress"`
	BillingAddress      Address      `json:"billingAddress"`
	BasketItems         []BasketItem `json:"basketItems"`
}

// CheckoutFormResult is the shared response shape of both the initialize
// and the retrieve operations. Status reports whether the API call itself
// succeeded; PaymentStatus reports the transaction outcome and is only
// meaningful on retrieve.
type CheckoutFormResult struct {
	Status              string `json:"status"`
	ConversationID      string `json:"conversationId"`
	Token               string `json:"token"`
	CheckoutFormContent string `json:"checkoutFormContent"`
	PaymentPageURL      string `json:"paymentPageUrl"`
	PaymentID           string `json:"paymentId"`
	PaymentStatus       string `json:"paymentStatus"`
	ErrorCode           string `json:"errorCode"`
	ErrorMessage        string `json:"errorMessage"`
}

func (s *IyzicoService) InitializeCheckoutForm(req *CheckoutFormRequest) (*CheckoutFormResult, error) {
	return s.post(initializePath, req)
}

func (s *IyzicoService) RetrieveCheckoutForm(token string) (*CheckoutFormResult, error) {
	body := struct {
		Locale string `json:"locale"`
		Token  string `json:"token"`
	}{
		Locale: "tr",
		Token:  token,
	}
	return s.post(retrievePath, body)
}

func (s *IyzicoService) post(path string, body interface{}) (*CheckoutFormResult, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("iyzico: marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	randomKey := strconv.FormatInt(time.Now().UnixNano(), 10)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", s.authorization(randomKey, path, payload))
	req.Header.Set("x-iyzi-rnd", randomKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("iyzico: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("iyzico: unexpected status %d", resp.StatusCode)
	}

	var result CheckoutFormResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("iyzico: decode response: %w", err)
	}
	return &result, nil
}

// authorization builds the IYZWSv2 header: an HMAC-SHA256 signature over
// the random key, request path and raw body, keyed with the secret key.
func (s *IyzicoService) authorization(randomKey, path string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(s.secretKey))
	mac.Write([]byte(randomKey))
	mac.Write([]byte(path))
	mac.Write(payload)
	signature := hex.EncodeToString(mac.Sum(nil))

	auth := fmt.Sprintf("apiKey:%s&randomKey:%s&signature:%s", s.apiKey, randomKey, signature)
	return "IYZWSv2 " + base64.StdEncoding.EncodeToString([]byte(auth))
}
