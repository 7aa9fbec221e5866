package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeCheckoutFormSendsSignedRequest(t *testing.T) {
	var gotPath, gotAuth, gotRnd string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotRnd = r.Header.Get("x-iyzi-rnd")
		gotBody, _ = io.ReadAll(r.Body)

		json.NewEncoder(w).Encode(CheckoutFormResult{
			Status:              StatusSuccess,
			Token:               "tok-1",
			CheckoutFormContent: "<div></div>",
			PaymentPageURL:      "https://pay.example/tok-1",
		})
	}))
	defer srv.Close()

	svc := NewIyzicoService("api-key", "secret-key", srv.URL)

	result, err := svc.InitializeCheckoutForm(&CheckoutFormRequest{
		Locale:         "tr",
		ConversationID: "pkg_1_abc",
		Price:          "500.00",
		PaidPrice:      "500.00",
		Currency:       "TRY",
	})
	require.NoError(t, err)

	assert.Equal(t, initializePath, gotPath)
	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, "tok-1", result.Token)
	assert.Equal(t, "https://pay.example/tok-1", result.PaymentPageURL)

	var sent CheckoutFormRequest
	require.NoError(t, json.Unmarshal(gotBody, &sent))
	assert.Equal(t, "pkg_1_abc", sent.ConversationID)
	assert.Equal(t, "TRY", sent.Currency)

	// The header must carry the HMAC signature over rnd + path + body.
	require.True(t, strings.HasPrefix(gotAuth, "IYZWSv2 "))
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(gotAuth, "IYZWSv2 "))
	require.NoError(t, err)

	mac := hmac.New(sha256.New, []byte("secret-key"))
	mac.Write([]byte(gotRnd))
	mac.Write([]byte(initializePath))
	mac.Write(gotBody)
	expected := fmt.Sprintf("apiKey:api-key&randomKey:%s&signature:%s", gotRnd, hex.EncodeToString(mac.Sum(nil)))
	assert.Equal(t, expected, string(decoded))
}

func TestRetrieveCheckoutForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, retrievePath, r.URL.Path)

		var body struct {
			Locale string `json:"locale"`
			Token  string `json:"token"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tok-2", body.Token)

		json.NewEncoder(w).Encode(CheckoutFormResult{
			Status:         StatusSuccess,
			PaymentStatus:  PaymentStatusSuccess,
			ConversationID: "pkg_1_def",
			PaymentID:      "12345678",
		})
	}))
	defer srv.Close()

	svc := NewIyzicoService("api-key", "secret-key", srv.URL)

	result, err := svc.RetrieveCheckoutForm("tok-2")
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusSuccess, result.PaymentStatus)
	assert.Equal(t, "pkg_1_def", result.ConversationID)
	assert.Equal(t, "12345678", result.PaymentID)
}

func TestGatewayServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewIyzicoService("api-key", "secret-key", srv.URL)

	_, err := svc.RetrieveCheckoutForm("tok-3")
	assert.Error(t, err)
}

func TestGatewayDeclineIsNotATransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(CheckoutFormResult{
			Status:       "failure",
			ErrorCode:    "5001",
			ErrorMessage: "Invalid signature",
		})
	}))
	defer srv.Close()

	svc := NewIyzicoService("api-key", "secret-key", srv.URL)

	result, err := svc.InitializeCheckoutForm(&CheckoutFormRequest{ConversationID: "pkg_1_ghi"})
	require.NoError(t, err)
	assert.Equal(t, "failure", result.Status)
	assert.Equal(t, "Invalid signature", result.ErrorMessage)
}
