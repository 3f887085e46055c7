package esign

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/jwt"

	"kycapi/internal/config"
)

var scopes = []string{"signature", "impersonation"}

// Client talks to the DocuSign eSignature REST API using the JWT bearer grant.
type Client struct {
	cfg        config.DocuSignConfig
	base       *http.Client
	tokens     oauth2.TokenSource
	authCode   *oauth2.Config
	accountURL string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the instrumented default transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.base = hc }
}

// New validates cfg, loads the signing key and prepares the token source.
func New(cfg config.DocuSignConfig, opts ...Option) (*Client, error) {
	var missing []string
	for name, v := range map[string]string{
		"DOCUSIGN_INTEGRATOR_KEY": cfg.IntegratorKey,
		"DOCUSIGN_USER_ID":        cfg.UserID,
		"DOCUSIGN_ACCOUNT_ID":     cfg.AccountID,
	} {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	key, err := LoadPrivateKey(cfg.PrivateKey, cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read or validate private key: %w", err)
	}

	c := &Client{
		cfg:  cfg,
		base: &http.Client{Timeout: 30 * time.Second, Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, o := range opts {
		o(c)
	}

	oauthBase := oauthBaseURL(cfg.OAuthBasePath)
	jwtCfg := &jwt.Config{
		Email:      cfg.IntegratorKey,
		Subject:    cfg.UserID,
		PrivateKey: key,
		Scopes:     scopes,
		TokenURL:   oauthBase + "/oauth/token",
		Audience:   strings.TrimPrefix(strings.TrimPrefix(oauthBase, "https://"), "http://"),
		Expires:    time.Hour,
	}
	c.tokens = oauth2.ReuseTokenSource(nil, jwtCfg.TokenSource(c.httpContext(context.Background())))
	c.authCode = &oauth2.Config{
		ClientID:     cfg.IntegratorKey,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       []string{"signature"},
		Endpoint: oauth2.Endpoint{
			AuthURL:   oauthBase + "/oauth/auth",
			TokenURL:  oauthBase + "/oauth/token",
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
	c.accountURL = strings.TrimRight(cfg.BasePath, "/") + "/v2.1/accounts/" + url.PathEscape(cfg.AccountID)
	return c, nil
}

func oauthBaseURL(p string) string {
	p = strings.TrimRight(p, "/")
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return "https://" + p
}

func (c *Client) httpContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.base)
}

// token fetches (or reuses) an access token, mapping failures to ProviderAuthError.
func (c *Client) token() (*oauth2.Token, error) {
	tok, err := c.tokens.Token()
	if err != nil {
		return nil, tokenError(err)
	}
	return tok, nil
}

func (c *Client) do(ctx context.Context, method, u string, body any, out any) (int, error) {
	tok, err := c.token()
	if err != nil {
		return 0, err
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	tok.SetAuthHeader(req)

	resp, err := c.base.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		var apiErr struct {
			ErrorCode string `json:"errorCode"`
			Message   string `json:"message"`
		}
		_ = json.Unmarshal(raw, &apiErr)
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Code: apiErr.ErrorCode, Message: apiErr.Message}
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// AccountInfo is the subset of account information the service checks.
type AccountInfo struct {
	AccountIDGUID string `json:"accountIdGuid"`
	AccountName   string `json:"accountName"`
	Status        string `json:"status"`
}

// CheckAccount verifies the account exists, is reachable with our credentials
// and is active. Any such failure is a *ProviderAuthError.
func (c *Client) CheckAccount(ctx context.Context) (*AccountInfo, error) {
	var info AccountInfo
	status, err := c.do(ctx, http.MethodGet, c.accountURL, nil, &info)
	if err != nil {
		var pae *ProviderAuthError
		if errors.As(err, &pae) {
			return nil, err
		}
		if mapped := accountStatusError(status, err); mapped != nil {
			return nil, mapped
		}
		return nil, &ProviderAuthError{Reason: err.Error(), Err: err}
	}
	if info.Status != "" && !strings.EqualFold(info.Status, "active") {
		return nil, &ProviderAuthError{Reason: "DocuSign account is not active. Current status: " + info.Status}
	}
	return &info, nil
}

// CreateEnvelope sends def for signature.
func (c *Client) CreateEnvelope(ctx context.Context, def EnvelopeDefinition) (*EnvelopeSummary, error) {
	var out EnvelopeSummary
	if _, err := c.do(ctx, http.MethodPost, c.accountURL+"/envelopes", def, &out); err != nil {
		return nil, err
	}
	if out.EnvelopeID == "" {
		return nil, errors.New("envelope created without an id")
	}
	return &out, nil
}

// ConsentURL is where an administrator grants the integration consent.
func (c *Client) ConsentURL(state string) string {
	return c.authCode.AuthCodeURL(state)
}

// ExchangeCode completes the authorization-code grant started by ConsentURL.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := c.authCode.Exchange(c.httpContext(ctx), code)
	if err != nil {
		return nil, tokenError(err)
	}
	return tok, nil
}
