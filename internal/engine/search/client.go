package search

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	utls "github.com/refraction-networking/utls"
	"github.com/sirupsen/logrus"

	"github.com/rendis/mealee/internal/model"
)

const (
	DefaultBaseURL = "https://mealee-api.herokuapp.com"
	retrievePath   = "/retrieve/"
)

// Options configures a Client. Zero values are usable: the default host, no
// proxy, no timeout.
type Options struct {
	BaseURL   string
	ProxyURL  string
	UserAgent string
	// Timeout bounds the whole request. Zero means no timeout.
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

// Client talks to the business search API. One call is one GET; nothing is
// retried.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	log       logrus.FieldLogger
}

func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q", opts.BaseURL)
	}

	transport, err := newTransport(opts.ProxyURL)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	return &Client{
		http: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
		baseURL:   base,
		userAgent: opts.UserAgent,
		log:       log,
	}, nil
}

// newTransport dials TLS with a Chrome fingerprint and HTTP/1.1 ALPN. With a
// proxy configured it falls back to standard TLS since the proxy owns the
// connection.
func newTransport(proxyURL string) (*http.Transport, error) {
	dialer := &net.Dialer{
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		DialContext: dialer.DialContext,
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}

			host, _, err := net.SplitHostPort(addr)
			if err != nil {
				host = addr
			}

			spec, err := utls.UTLSIdToSpec(utls.HelloChrome_Auto)
			if err != nil {
				conn.Close()
				return nil, err
			}
			for i, ext := range spec.Extensions {
				if alpn, ok := ext.(*utls.ALPNExtension); ok {
					alpn.AlpnProtocols = []string{"http/1.1"}
					spec.Extensions[i] = alpn
					break
				}
			}

			tlsConn := utls.UClient(conn, &utls.Config{
				ServerName: host,
			}, utls.HelloCustom)
			if err := tlsConn.ApplyPreset(&spec); err != nil {
				conn.Close()
				return nil, err
			}
			if err := tlsConn.HandshakeContext(ctx); err != nil {
				conn.Close()
				return nil, err
			}

			return tlsConn, nil
		},
		MaxIdleConns:    4,
		IdleConnTimeout: 90 * time.Second,
	}

	if proxyURL != "" {
		proxyParsed, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url %q: %w", proxyURL, err)
		}
		transport.Proxy = http.ProxyURL(proxyParsed)
		transport.DialTLSContext = nil
		transport.TLSClientConfig = &tls.Config{}
	}

	return transport, nil
}

// RequestURL builds the /retrieve URL for the given criteria and limit.
func (c *Client) RequestURL(criteria Criteria, limit int) string {
	params := url.Values{}
	params.Set("term", criteria.Term)
	params.Set("location", criteria.Location)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("price", criteria.Price())
	return c.baseURL + retrievePath + "?" + params.Encode()
}

// FetchBusinesses performs the single search request for a game.
// Failures come back as *TransportError, and a response with fewer than two
// businesses as *NoResultsError.
func (c *Client) FetchBusinesses(ctx context.Context, criteria Criteria, limit int) ([]model.Business, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	reqURL := c.RequestURL(criteria, limit)
	entry := c.log.WithFields(logrus.Fields{
		"url":      reqURL,
		"term":     criteria.Term,
		"location": criteria.Location,
		"price":    criteria.Price(),
		"limit":    limit,
	})
	start := time.Now()

	body, err := c.doRequest(ctx, reqURL)
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) && te.StatusCode != 0 {
			entry = entry.WithField("status", te.StatusCode)
		}
		entry.WithError(err).Warn("search request failed")
		return nil, err
	}
	entry = entry.WithField("status", http.StatusOK)

	businesses, err := ParseResponse(body)
	if err != nil {
		entry.WithError(err).Warn("search response unreadable")
		return nil, &TransportError{Op: "parse", Err: err}
	}

	entry.WithFields(logrus.Fields{
		"count":   len(businesses),
		"elapsed": time.Since(start).Truncate(time.Millisecond),
	}).Info("search completed")

	if len(businesses) < 2 {
		return nil, &NoResultsError{Count: len(businesses)}
	}
	return businesses, nil
}

func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "get", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{Op: "get", StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read body", Err: err}
	}
	return body, nil
}
