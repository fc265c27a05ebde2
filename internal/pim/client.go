package pim

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	signInEndpoint = "/sign-in/"

	defaultTokenLifetime   = time.Hour
	defaultTokenMargin     = 5 * time.Minute
	defaultDownloadTimeout = 60 * time.Second
)

// Clock provides current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Option is custom configuration of Client.
type Option func(c *Client)

// Client calls PIM HTTP API. It keeps bearer token and renews it before it expires.
type Client struct {
	client    *http.Client
	baseURL   string
	imageURL  string
	login     string
	password  string
	userAgent string
	logger    *zerolog.Logger
	limiter   *rate.Limiter
	clock     Clock

	tokenLifetime   time.Duration
	tokenMargin     time.Duration
	downloadTimeout time.Duration

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewClient returns new Client. It doesn't authenticate until first request or Authenticate call.
func NewClient(
	client *http.Client,
	baseURL, login, password string,
	logger *zerolog.Logger,
	ops ...Option,
) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	c := &Client{
		client:          client,
		baseURL:         baseURL,
		imageURL:        baseURL + "/image/",
		login:           login,
		password:        password,
		logger:          logger,
		limiter:         rate.NewLimiter(rate.Inf, 1),
		clock:           systemClock{},
		tokenLifetime:   defaultTokenLifetime,
		tokenMargin:     defaultTokenMargin,
		downloadTimeout: defaultDownloadTimeout,
	}

	for _, op := range ops {
		op(c)
	}

	return c
}

// NewHTTPClient returns http client with total request timeout and connection timeout.
func NewHTTPClient(timeout, connectTimeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: connectTimeout}).DialContext

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

type signInRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

type signInData struct {
	Access struct {
		Token string `json:"token"`
	} `json:"access"`
}

// Authenticate exchanges credentials for bearer token.
func (c *Client) Authenticate(ctx context.Context) error {
	var resp envelope[signInData]
	err := c.request(ctx, http.MethodPost, signInEndpoint, signInRequest{
		Login:    c.login,
		Password: c.password,
		Remember: true,
	}, false, &resp)

	var statusErr *StatusError
	if errors.As(err, &statusErr) &&
		(statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden) {
		return fmt.Errorf("%w: %w", ErrAuth, err)
	}
	if err != nil {
		return fmt.Errorf("can't sign in: %w", err)
	}

	if !resp.Success || resp.Data.Access.Token == "" {
		return fmt.Errorf("%w: sign-in response has no token", ErrAuth)
	}

	c.mu.Lock()
	c.token = resp.Data.Access.Token
	c.expires = c.clock.Now().Add(c.tokenLifetime - c.tokenMargin)
	c.mu.Unlock()

	c.logger.Debug().Msg("authenticated in pim api")

	return nil
}

// TestConnection re-authenticates and reports whether it succeeded.
func (c *Client) TestConnection(ctx context.Context) bool {
	if err := c.Authenticate(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("pim connection test failed")
		return false
	}
	return true
}

// bearer returns valid token, authenticating first when token is expired.
func (c *Client) bearer(ctx context.Context) (string, error) {
	c.mu.Lock()
	expired := !c.clock.Now().Before(c.expires)
	c.mu.Unlock()

	if expired {
		c.logger.Debug().Msg("pim token expired, authenticating")
		if err := c.Authenticate(ctx); err != nil {
			return "", err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.token, nil
}

// request calls endpoint and decodes JSON response into out.
func (c *Client) request(ctx context.Context, method, endpoint string, body any, useAuth bool, out any) error {
	var token string
	if useAuth {
		var err error
		if token, err = c.bearer(ctx); err != nil {
			return err
		}
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("can't encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("can't build http request: %w", err)
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Add("User-Agent", c.userAgent)
	}
	if useAuth {
		req.Header.Add("Authorization", "Bearer "+token)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Msg("pim request")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: can't read response: %w", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return nil
}

// WithClock sets Client's custom Clock.
func WithClock(clock Clock) Option {
	return func(c *Client) {
		c.clock = clock
	}
}

// WithRateLimit limits number of requests per second sent to PIM.
func WithRateLimit(requestsPerSecond float64) Option {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
		}
	}
}

// WithImageURL sets base URL of images.
func WithImageURL(imageURL string) Option {
	return func(c *Client) {
		if imageURL != "" {
			c.imageURL = imageURL
		}
	}
}

// WithUserAgent sets User-Agent header value.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTokenLifetime sets token lifetime and margin before expiration when token is renewed.
func WithTokenLifetime(lifetime, margin time.Duration) Option {
	return func(c *Client) {
		c.tokenLifetime = lifetime
		c.tokenMargin = margin
	}
}

// WithDownloadTimeout sets total timeout of single image download.
func WithDownloadTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.downloadTimeout = timeout
	}
}
