// Package shopify pushes product records to a Shopify store. The sync is
// one-way: local products are created or updated remotely, never pulled.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/soapyfluffs/soapmaker-web/models"
)

const (
	apiVersion     = "2023-04"
	defaultTimeout = 30 * time.Second
)

// Config describes how the Shopify client should be initialised.
type Config struct {
	Domain      string
	AccessToken string
	Timeout     time.Duration
	HTTPClient  *http.Client

	// BaseURL overrides the derived https://<domain>/admin/api/<version>
	// endpoint, primarily for tests.
	BaseURL string
}

// Client offers a thin wrapper around the Shopify Admin REST API.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// New builds a Client that can push products to the configured store.
func New(cfg Config) (*Client, error) {
	domain := strings.TrimSpace(cfg.Domain)
	token := strings.TrimSpace(cfg.AccessToken)
	if domain == "" && strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("shopify: store domain must not be empty")
	}
	if token == "" {
		return nil, errors.New("shopify: access token must not be empty")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s/admin/api/%s", domain, apiVersion)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
		}
	}

	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: token,
		httpClient:  httpClient,
	}, nil
}

type productPayload struct {
	Title    string           `json:"title"`
	BodyHTML string           `json:"body_html"`
	Variants []variantPayload `json:"variants"`
}

type variantPayload struct {
	Price  float64 `json:"price"`
	Weight float64 `json:"weight"`
	SKU    string  `json:"sku"`
}

type productEnvelope struct {
	Product productPayload `json:"product"`
}

type productResponse struct {
	Product struct {
		ID int64 `json:"id"`
	} `json:"product"`
}

// SyncProduct pushes one product to the store: created remotely when the
// local record carries no Shopify id, updated in place otherwise. It returns
// the remote product id.
func (c *Client) SyncProduct(ctx context.Context, product *models.Product) (string, error) {
	if product == nil {
		return "", errors.New("shopify: product must not be nil")
	}

	envelope := productEnvelope{
		Product: productPayload{
			Title:    product.Name,
			BodyHTML: product.Description,
			Variants: []variantPayload{
				{
					Price:  product.Price,
					Weight: product.Weight,
					SKU:    product.SKU,
				},
			},
		},
	}

	method := http.MethodPost
	endpoint := "/products.json"
	if strings.TrimSpace(product.ShopifyID) != "" {
		method = http.MethodPut
		endpoint = fmt.Sprintf("/products/%s.json", strings.TrimSpace(product.ShopifyID))
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("shopify: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("shopify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("shopify: perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("shopify: api error: %s", resp.Status)
	}

	var parsed productResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("shopify: decode response: %w", err)
	}
	if parsed.Product.ID == 0 {
		return "", errors.New("shopify: response missing product id")
	}

	return strconv.FormatInt(parsed.Product.ID, 10), nil
}
