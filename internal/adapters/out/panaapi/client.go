// internal/adapters/out/panaapi/client.go
package panaapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"panastore/internal/domain/commerce"
)

// Client talks to the external Pana commerce API over HTTP/JSON. It is
// store-scoped (one API token per shop); customer calls carry the bearer
// credential passed in per call.
//
// Calls are single-shot: no retry, no client-side timeout wrapper. Callers
// bound them through ctx if they need to.
type Client struct {
	BaseURL  string
	APIToken string
	HTTP     *http.Client
}

func NewClient(baseURL, apiToken string) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		APIToken: strings.TrimSpace(apiToken),
		HTTP:     &http.Client{},
	}
}

var (
	_ commerce.CartOperations = (*Client)(nil)
	_ commerce.AuthOperations = (*Client)(nil)
)

// -------------------------
// Auth operations
// -------------------------

func (c *Client) Login(ctx context.Context, email, password string) (*commerce.LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var out commerce.LoginResult
	if err := c.do(ctx, http.MethodPost, "/store/login", "", body, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.AccessToken) == "" {
		return nil, errors.New("panaapi: login succeeded without access token")
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req commerce.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/store/register", "", req, nil)
}

func (c *Client) GetMe(ctx context.Context, token string) (*commerce.Customer, error) {
	var out commerce.Customer
	if err := c.do(ctx, http.MethodGet, "/customer/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// -------------------------
// Cart operations
// -------------------------

func (c *Client) GetCart(ctx context.Context, token string) (*commerce.Cart, error) {
	var out commerce.Cart
	if err := c.do(ctx, http.MethodGet, "/customer/shopping-cart", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddItem(ctx context.Context, token, variantID string, amount int) (*commerce.Cart, error) {
	path := "/customer/shopping-cart/items/" + url.PathEscape(strings.TrimSpace(variantID))
	body := map[string]int{"amount": amount}

	var out commerce.Cart
	if err := c.do(ctx, http.MethodPost, path, token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveItem(ctx context.Context, token, itemID string) (*commerce.Cart, error) {
	path := "/customer/shopping-cart/items/" + url.PathEscape(strings.TrimSpace(itemID))

	var out commerce.Cart
	if err := c.do(ctx, http.MethodDelete, path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ClearCart(ctx context.Context, token string) (*commerce.Cart, error) {
	var out commerce.Cart
	if err := c.do(ctx, http.MethodDelete, "/customer/shopping-cart", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Checkout(ctx context.Context, token string) (*commerce.Order, error) {
	var out commerce.Order
	if err := c.do(ctx, http.MethodPost, "/customer/checkout", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// -------------------------
// Transport
// -------------------------

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("panaapi: client is nil")
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("panaapi: base url is empty")
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("panaapi: encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIToken != "" {
		req.Header.Set("X-Api-Key", c.APIToken)
	}
	if t := strings.TrimSpace(token); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == http.StatusUnauthorized {
		return commerce.ErrUnauthorized
	}
	if res.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		log.Printf("[panaapi] %s %s status=%d body=%s", method, path, res.StatusCode, headString(snippet, 256))
		return fmt.Errorf("panaapi: %s %s failed: status=%d", method, path, res.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("panaapi: decode response: %w", err)
	}
	return nil
}

func headString(b []byte, max int) string {
	if len(b) == 0 {
		return ""
	}
	if len(b) > max {
		b = b[:max]
	}
	s := string(b)
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	return s
}
