package telegram

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/GlebRadaev/starmatch/internal/config"
	"github.com/stretchr/testify/assert"
)

type stubHTTPClient struct {
	lastURL    string
	lastBody   []byte
	statusCode int
	respBody   []byte
	err        error
}

func (s *stubHTTPClient) Get(url string, headers map[string]string) (int, []byte, http.Header, error) {
	s.lastURL = url
	return s.statusCode, s.respBody, nil, s.err
}

func (s *stubHTTPClient) Post(url string, headers map[string]string, body []byte) (int, []byte, http.Header, error) {
	s.lastURL = url
	s.lastBody = body
	return s.statusCode, s.respBody, nil, s.err
}

func newTestClient(stub *stubHTTPClient) *Client {
	cfg := &config.Config{BotAPIURL: "https://api.telegram.org", BotToken: "test-token"}
	return New(cfg, stub)
}

func TestClient_SendMessage(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		stub := &stubHTTPClient{statusCode: http.StatusOK, respBody: []byte(`{"ok": true}`)}
		client := newTestClient(stub)

		err := client.SendMessage(100, "hello")
		assert.NoError(t, err)
		assert.Equal(t, "https://api.telegram.org/bottest-token/sendMessage", stub.lastURL)

		var params map[string]any
		assert.NoError(t, json.Unmarshal(stub.lastBody, &params))
		assert.Equal(t, float64(100), params["chat_id"])
		assert.Equal(t, "hello", params["text"])
	})

	t.Run("api rejection", func(t *testing.T) {
		stub := &stubHTTPClient{
			statusCode: http.StatusBadRequest,
			respBody:   []byte(`{"ok": false, "description": "chat not found"}`),
		}
		client := newTestClient(stub)

		err := client.SendMessage(100, "hello")
		assert.ErrorContains(t, err, "chat not found")
	})

	t.Run("transport failure", func(t *testing.T) {
		stub := &stubHTTPClient{err: errors.New("connection refused")}
		client := newTestClient(stub)

		err := client.SendMessage(100, "hello")
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestClient_CreateInvoiceLink(t *testing.T) {
	stub := &stubHTTPClient{
		statusCode: http.StatusOK,
		respBody:   []byte(`{"ok": true, "result": "https://t.me/invoice/abc"}`),
	}
	client := newTestClient(stub)

	link, err := client.CreateInvoiceLink("Stars top-up", "50 Stars", "payment_abc", 50)
	assert.NoError(t, err)
	assert.Equal(t, "https://t.me/invoice/abc", link)

	var params map[string]any
	assert.NoError(t, json.Unmarshal(stub.lastBody, &params))
	assert.Equal(t, StarsCurrency, params["currency"])
	assert.Equal(t, "payment_abc", params["payload"])

	prices, ok := params["prices"].([]any)
	assert.True(t, ok)
	assert.Len(t, prices, 1)
}

func TestClient_AnswerPreCheckoutQuery(t *testing.T) {
	stub := &stubHTTPClient{statusCode: http.StatusOK, respBody: []byte(`{"ok": true}`)}
	client := newTestClient(stub)

	err := client.AnswerPreCheckoutQuery("q1", true)
	assert.NoError(t, err)
	assert.Equal(t, "https://api.telegram.org/bottest-token/answerPreCheckoutQuery", stub.lastURL)

	var params map[string]any
	assert.NoError(t, json.Unmarshal(stub.lastBody, &params))
	assert.Equal(t, "q1", params["pre_checkout_query_id"])
	assert.Equal(t, true, params["ok"])
}
