package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/spec-kit/verify-service/internal/config"
)

// Verifier confirms a submitted CAPTCHA response against the remote oracle.
type Verifier interface {
	Verify(ctx context.Context, response string) (bool, error)
}

// siteVerifyResponse mirrors the oracle's JSON reply.
type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Client calls the reCAPTCHA siteverify endpoint.
type Client struct {
	secret    string
	verifyURL string
	http      *http.Client
}

// NewClient builds a verifier from configuration.
func NewClient(cfg config.CaptchaConfig) *Client {
	return &Client{
		secret:    cfg.Secret,
		verifyURL: cfg.VerifyURL,
		http:      &http.Client{Timeout: cfg.Timeout()},
	}
}

// Verify posts {secret, response} to the oracle and reports the
// verdict. A reachable oracle that rejects the response returns
// (false, nil); transport and decode failures return an error.
func (c *Client) Verify(ctx context.Context, response string) (bool, error) {
	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", response)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("call siteverify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("siteverify status %d", resp.StatusCode)
	}

	var verdict siteVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return false, fmt.Errorf("decode siteverify response: %w", err)
	}
	return verdict.Success, nil
}
