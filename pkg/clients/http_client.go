package clients

import (
	"bytes"
	"io"
	"net/http"
	"time"
)

type HTTPClientI interface {
	Get(url string, headers map[string]string) (int, []byte, http.Header, error)
	Post(url string, headers map[string]string, body []byte) (int, []byte, http.Header, error)
}

type HTTPClient struct {
	client *http.Client
}

func NewHTTPClient() *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) Get(url string, headers map[string]string) (int, []byte, http.Header, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, nil, err
	}
	return c.do(req, headers)
}

func (c *HTTPClient) Post(url string, headers map[string]string, body []byte) (int, []byte, http.Header, error) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, headers)
}

func (c *HTTPClient) do(req *http.Request, headers map[string]string) (int, []byte, http.Header, error) {
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, resp.Header, err
	}
	return resp.StatusCode, respBody, resp.Header, nil
}
