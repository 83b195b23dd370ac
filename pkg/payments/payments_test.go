package payments_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/pkg/payments"
)

func params() payments.CreateSessionParams {
	return payments.CreateSessionParams{
		LineItems: []payments.LineItem{
			{Name: "Widget", UnitAmount: 1000, Quantity: 2},
			{Name: "Gadget", UnitAmount: 2500, Quantity: 1},
		},
		SuccessURL: "http://shop.local/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  "http://shop.local/cart",
		Metadata:   map[string]string{"order_id": "order-1"},
	}
}

func TestCreateSession(t *testing.T) {
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sk_test", user)

		assert.NoError(t, r.ParseForm())
		gotForm = map[string]string{}
		for key := range r.Form {
			gotForm[key] = r.FormValue(key)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_123","url":"https://pay.example/abc"}`))
	}))
	defer server.Close()

	client := payments.NewClient(payments.Config{SecretKey: "sk_test", BaseURL: server.URL})
	session, err := client.CreateSession(context.Background(), params())
	assert.NoError(t, err)
	assert.Equal(t, "cs_123", session.ID)
	assert.Equal(t, "https://pay.example/abc", session.URL)

	assert.Equal(t, "payment", gotForm["mode"])
	assert.Equal(t, "2", gotForm["line_items[0][quantity]"])
	assert.Equal(t, "1000", gotForm["line_items[0][price_data][unit_amount]"])
	assert.Equal(t, "inr", gotForm["line_items[0][price_data][currency]"])
	assert.Equal(t, "Widget", gotForm["line_items[0][price_data][product_data][name]"])
	assert.Equal(t, "Gadget", gotForm["line_items[1][price_data][product_data][name]"])
	assert.Equal(t, "order-1", gotForm["metadata[order_id]"])
	assert.Equal(t, "http://shop.local/cart", gotForm["cancel_url"])
}

func TestCreateSessionProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"no such key"}}`))
	}))
	defer server.Close()

	client := payments.NewClient(payments.Config{SecretKey: "sk_bad", BaseURL: server.URL})
	session, err := client.CreateSession(context.Background(), params())
	assert.Error(t, err)
	assert.Nil(t, session)
	assert.Contains(t, err.Error(), "status 402")
}

func TestCreateSessionMissingRedirectURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_123"}`))
	}))
	defer server.Close()

	client := payments.NewClient(payments.Config{SecretKey: "sk_test", BaseURL: server.URL})
	session, err := client.CreateSession(context.Background(), params())
	assert.Error(t, err)
	assert.Nil(t, session)
}

func TestCreateSessionRequiresLineItems(t *testing.T) {
	client := payments.NewClient(payments.Config{SecretKey: "sk_test"})
	session, err := client.CreateSession(context.Background(), payments.CreateSessionParams{})
	assert.Error(t, err)
	assert.Nil(t, session)
}
