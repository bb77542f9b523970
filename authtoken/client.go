package authtoken

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/andyle182810/gtracker/httpclient"
	"github.com/andyle182810/gtracker/xmlcodec"
	"github.com/rs/zerolog"
)

var (
	ErrTokenRequestFailed = errors.New("authtoken: token request failed")
	ErrNoAccessToken      = errors.New("authtoken: no access token in response")
)

const (
	TokenPath      = "/tokens/active"
	headerAccept   = "Accept"
	contentTypeXML = "application/xml"
)

// Doer executes a fully built request. *httpclient.Client implements it.
type Doer interface {
	Do(ctx context.Context, req *httpclient.Request, opts ...httpclient.RequestOption) (*httpclient.Response, error)
}

// Client exchanges a username and password for the user's API token. The token
// is kept until InvalidateToken since Tracker tokens do not expire.
type Client struct {
	tokenURL string
	username string
	password string
	doer     Doer
	logger   zerolog.Logger

	mu          sync.RWMutex
	accessToken string
}

// New returns a client for the API rooted at baseURL, e.g.
// https://www.pivotaltracker.com/services/v2.
func New(baseURL, username, password string, opts ...Option) *Client {
	c := &Client{
		tokenURL:    strings.TrimRight(baseURL, "/") + TokenPath,
		username:    username,
		password:    password,
		doer:        nil,
		logger:      zerolog.Nop(),
		mu:          sync.RWMutex{},
		accessToken: "",
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.doer == nil {
		c.doer = httpclient.New(httpclient.WithTimeout(DefaultTimeout), httpclient.WithLogger(c.logger))
	}

	return c
}

func (c *Client) GetToken(ctx context.Context) (string, error) {
	c.mu.RLock()
	if c.accessToken != "" {
		token := c.accessToken
		c.mu.RUnlock()

		return token, nil
	}
	c.mu.RUnlock()

	return c.refreshToken(ctx)
}

func (c *Client) refreshToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have fetched it while we waited for the lock.
	if c.accessToken != "" {
		return c.accessToken, nil
	}

	token, err := c.fetchToken(ctx)
	if err != nil {
		return "", err
	}

	c.accessToken = token

	return c.accessToken, nil
}

func (c *Client) fetchToken(ctx context.Context) (string, error) {
	resp, err := c.doer.Do(ctx, &httpclient.Request{
		Method:    http.MethodGet,
		URL:       c.tokenURL,
		Header:    map[string]string{headerAccept: contentTypeXML},
		Body:      nil,
		BasicAuth: &httpclient.BasicAuth{Username: c.username, Password: c.password},
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch token: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().
			Str("username", c.username).
			Int("status", resp.StatusCode).
			Msg("The token request was rejected")

		return "", fmt.Errorf("%w: status %d", ErrTokenRequestFailed, resp.StatusCode)
	}

	doc, err := xmlcodec.Parse(string(resp.Body))
	if err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	guid := strings.TrimSpace(doc.Path("token", "guid").Str())
	if guid == "" {
		return "", ErrNoAccessToken
	}

	return guid, nil
}

func (c *Client) InvalidateToken() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accessToken = ""
}
