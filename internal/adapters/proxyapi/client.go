package proxyapi

import (
	"SignalConsole/internal/core/domain"
	"SignalConsole/internal/core/ports"
	"SignalConsole/internal/shared/config"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client implements the RegistrationClient and AttestationClient
// ports over the registration proxy's HTTP API.
type Client struct {
	baseURL        string
	attestationURL string
	http           *http.Client
	log            zerolog.Logger
}

var _ ports.RegistrationClient = (*Client)(nil)
var _ ports.AttestationClient = (*Client)(nil)

// NewClient creates a new proxy API client adapter.
func NewClient(cfg *config.Config, baseLogger *zerolog.Logger) *Client {
	return &Client{
		baseURL:        cfg.ProxyBaseURL,
		attestationURL: cfg.AttestationURL,
		http:           &http.Client{Timeout: cfg.RequestTimeout},
		log:            baseLogger.With().Str("component", "proxy_client").Logger(),
	}
}

// optional converts an empty string to an absent JSON field.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Register initiates registration for a phone number.
func (c *Client) Register(ctx context.Context, number string, params ports.RegisterParams) error {
	req := registerRequest{
		Captcha:         optional(params.Captcha),
		UseVoice:        params.UseVoice,
		OwnershipSecret: optional(params.OwnershipSecret),
		Model:           optional(params.Model),
		SystemPrompt:    optional(params.SystemPrompt),
	}

	var resp registerResponse
	path := "/v1/register/" + url.PathEscape(number)
	if err := c.do(ctx, http.MethodPost, c.baseURL+path, req, &resp); err != nil {
		return err
	}

	c.log.Info().Str("phone_number", resp.PhoneNumber).Str("status", resp.Status).Msg("Registration initiated")
	return nil
}

// Verify submits the verification code received via SMS or voice call.
func (c *Client) Verify(ctx context.Context, number, code string, params ports.VerifyParams) error {
	req := verifyRequest{
		Pin:             optional(params.Pin),
		OwnershipSecret: optional(params.OwnershipSecret),
	}

	var resp registerResponse
	path := "/v1/register/" + url.PathEscape(number) + "/verify/" + url.PathEscape(code)
	if err := c.do(ctx, http.MethodPost, c.baseURL+path, req, &resp); err != nil {
		return err
	}

	c.log.Info().Str("phone_number", resp.PhoneNumber).Msg("Registration verified")
	return nil
}

// UpdateProfile sets the account's display name and about text.
func (c *Client) UpdateProfile(ctx context.Context, number string, params ports.ProfileParams) error {
	req := updateProfileRequest{
		Name:            optional(params.Name),
		About:           optional(params.About),
		OwnershipSecret: optional(params.OwnershipSecret),
	}

	path := "/v1/profiles/" + url.PathEscape(number)
	if err := c.do(ctx, http.MethodPut, c.baseURL+path, req, nil); err != nil {
		return err
	}

	c.log.Info().Str("phone_number", number).Msg("Profile updated")
	return nil
}

// SetUsername claims a username and returns the signal.me link.
func (c *Client) SetUsername(ctx context.Context, number, username, ownershipSecret string) (string, error) {
	req := setUsernameRequest{
		Username:        username,
		OwnershipSecret: optional(ownershipSecret),
	}

	var resp usernameResponse
	path := "/v1/accounts/" + url.PathEscape(number) + "/username"
	if err := c.do(ctx, http.MethodPost, c.baseURL+path, req, &resp); err != nil {
		return "", err
	}

	var link string
	if resp.UsernameLink != nil {
		link = *resp.UsernameLink
	}
	c.log.Info().Str("phone_number", number).Str("username", username).Msg("Username set")
	return link, nil
}

// DeleteUsername releases the account's username.
func (c *Client) DeleteUsername(ctx context.Context, number, ownershipSecret string) error {
	req := ownershipRequest{OwnershipSecret: optional(ownershipSecret)}

	path := "/v1/accounts/" + url.PathEscape(number) + "/username"
	if err := c.do(ctx, http.MethodDelete, c.baseURL+path, req, nil); err != nil {
		return err
	}

	c.log.Info().Str("phone_number", number).Msg("Username deleted")
	return nil
}

// Status returns the registration record for a number.
func (c *Client) Status(ctx context.Context, number string) (*domain.AccountStatus, error) {
	var resp statusResponse
	path := "/v1/status/" + url.PathEscape(number)
	if err := c.do(ctx, http.MethodGet, c.baseURL+path, nil, &resp); err != nil {
		return nil, err
	}

	status := &domain.AccountStatus{
		PhoneNumber: resp.PhoneNumber,
		Status:      domain.RegistrationStatus(resp.Status),
	}
	if resp.RegisteredAt != nil {
		status.RegisteredAt = *resp.RegisteredAt
	}
	return status, nil
}

// Unregister removes the number's registration entirely.
func (c *Client) Unregister(ctx context.Context, number, ownershipSecret string) error {
	req := ownershipRequest{OwnershipSecret: optional(ownershipSecret)}

	path := "/v1/unregister/" + url.PathEscape(number)
	if err := c.do(ctx, http.MethodDelete, c.baseURL+path, req, nil); err != nil {
		return err
	}

	c.log.Info().Str("phone_number", number).Msg("Phone number unregistered")
	return nil
}

// ListBots returns the ordered public bot listing.
func (c *Client) ListBots(ctx context.Context) ([]domain.Bot, error) {
	var resp botsResponse
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/v1/bots", nil, &resp); err != nil {
		return nil, err
	}

	bots := make([]domain.Bot, 0, len(resp.Bots))
	for _, b := range resp.Bots {
		bot := domain.Bot{
			Username:     b.Username,
			PhoneNumber:  b.PhoneNumber,
			SignalLink:   b.SignalLink,
			RegisteredAt: b.RegisteredAt,
		}
		if b.IdentityKey != nil {
			bot.IdentityKey = *b.IdentityKey
		}
		if b.Model != nil {
			bot.Model = *b.Model
		}
		if b.Description != nil {
			bot.Description = *b.Description
		}
		if b.SystemPrompt != nil {
			bot.SystemPrompt = *b.SystemPrompt
		}
		bots = append(bots, bot)
	}

	c.log.Debug().Int("count", len(bots)).Msg("Fetched bot listing")
	return bots, nil
}

// Health reports whether the proxy and its Signal backend are up.
func (c *Client) Health(ctx context.Context) (bool, error) {
	var resp healthResponse
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/health", nil, &resp); err != nil {
		return false, err
	}
	return resp.Status == "ok" && resp.SignalAPIHealthy, nil
}

// FetchAttestation fetches an attestation snapshot. A non-empty
// challenge is reflected into the quote's report data for freshness.
func (c *Client) FetchAttestation(ctx context.Context, challenge string) (*domain.Attestation, error) {
	endpoint := c.attestationURL + "/api/attestation"
	if challenge != "" {
		endpoint += "?challenge=" + url.QueryEscape(challenge)
	}

	var resp attestationResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}

	att := &domain.Attestation{
		InTEE:     resp.InTEE,
		Challenge: challenge,
	}
	if resp.ComposeHash != nil {
		att.ComposeHash = *resp.ComposeHash
	}
	if resp.AppID != nil {
		att.AppID = *resp.AppID
	}
	if resp.TDXQuoteBase64 != nil {
		att.TDXQuoteBase64 = *resp.TDXQuoteBase64
	}
	if resp.VerificationURL != nil {
		att.VerificationURL = *resp.VerificationURL
	}

	c.log.Debug().Bool("in_tee", att.InTEE).Bool("challenged", challenge != "").Msg("Fetched attestation")
	return att, nil
}

// do runs one JSON round trip against the proxy. A nil out discards
// the response body after the status check.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("could not build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("endpoint", endpoint).Msg("Request failed")
		return fmt.Errorf("proxy request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapStatusError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Error().Err(err).Str("endpoint", endpoint).Msg("Failed to decode response")
		return fmt.Errorf("could not decode proxy response: %w", err)
	}
	return nil
}

// mapStatusError converts a non-2xx response into a sentinel error
// where one applies, otherwise an error carrying the server message.
func (c *Client) mapStatusError(resp *http.Response) error {
	var envelope errorResponse
	message := ""
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		message = envelope.Message
		if message == "" {
			message = envelope.Error
		}
	}

	c.log.Warn().Int("status", resp.StatusCode).Str("message", message).Msg("Proxy returned error")

	switch resp.StatusCode {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusForbidden:
		return domain.ErrOwnershipMismatch
	case http.StatusConflict:
		return domain.ErrAlreadyRegistered
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	}

	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("proxy error (HTTP %d): %s", resp.StatusCode, message)
}
