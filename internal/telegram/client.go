package telegram

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/GlebRadaev/starmatch/internal/config"
	"github.com/GlebRadaev/starmatch/pkg/clients"
)

// ClientI is the outbound Bot API surface. Message delivery is best-effort:
// callers on state-transition paths must treat failures as log-and-continue.
type ClientI interface {
	SendMessage(chatID int64, text string) error
	CreateInvoiceLink(title, description, payload string, amount int) (string, error)
	AnswerPreCheckoutQuery(queryID string, ok bool) error
}

// StarsCurrency is the Telegram Stars currency code used for invoices.
const StarsCurrency = "XTR"

type Client struct {
	apiURL string
	token  string
	client clients.HTTPClientI
}

func New(cfg *config.Config, client clients.HTTPClientI) *Client {
	return &Client{
		apiURL: cfg.BotAPIURL,
		token:  cfg.BotToken,
		client: client,
	}
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
}

func (c *Client) call(method string, params any, result any) error {
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("can't marshal %s params: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.apiURL, c.token, method)
	statusCode, respBody, _, err := c.client.Post(url, nil, body)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", method, err)
	}

	var resp apiResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return fmt.Errorf("can't parse %s response: %w", method, err)
	}
	if statusCode != http.StatusOK || !resp.OK {
		return fmt.Errorf("%s returned status %d: %s", method, statusCode, resp.Description)
	}
	if result != nil {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("can't parse %s result: %w", method, err)
		}
	}
	return nil
}

func (c *Client) SendMessage(chatID int64, text string) error {
	params := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	return c.call("sendMessage", params, nil)
}

func (c *Client) CreateInvoiceLink(title, description, payload string, amount int) (string, error) {
	params := map[string]any{
		"title":       title,
		"description": description,
		"payload":     payload,
		"currency":    StarsCurrency,
		"prices":      []LabeledPrice{{Label: description, Amount: amount}},
	}
	var link string
	if err := c.call("createInvoiceLink", params, &link); err != nil {
		return "", err
	}
	return link, nil
}

func (c *Client) AnswerPreCheckoutQuery(queryID string, ok bool) error {
	params := map[string]any{
		"pre_checkout_query_id": queryID,
		"ok":                    ok,
	}
	return c.call("answerPreCheckoutQuery", params, nil)
}
