package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mathdefenders/internal/bootstrap"
)

const captchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// AdapterCaptcha verifies reCAPTCHA response tokens against the
// external verification endpoint. In non-production mode every token
// is accepted without an outbound call.
type AdapterCaptcha struct {
	cfg        *bootstrap.Config
	httpClient *http.Client
}

func NewAdapterCaptcha(cfg *bootstrap.Config) *AdapterCaptcha {
	return &AdapterCaptcha{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type captchaVerifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

func (a *AdapterCaptcha) Verify(ctx context.Context, responseToken string) (bool, error) {
	if !a.cfg.Production {
		return true, nil
	}
	if responseToken == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", a.cfg.CaptchaSecretKey)
	form.Set("response", responseToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, captchaVerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("failed to build captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha verification call failed: %w", err)
	}
	defer resp.Body.Close()

	var result captchaVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode captcha response: %w", err)
	}
	return result.Success, nil
}
