package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rendis/mealee/internal/engine/search"
)

// MaxLimit is the largest pool the search API will return.
const MaxLimit = 50

// PoolSizes are the pool sizes offered on the play screen.
var PoolSizes = []int{4, 8, 16, 32, MaxLimit}

// Config holds all runtime settings. Precedence: defaults, then environment,
// then command line flags.
type Config struct {
	APIURL    string
	ProxyURL  string
	UserAgent string
	Timeout   time.Duration // 0 = no timeout
	Limit     int           // default pool size
	LogFile   string        // empty = XDG state dir
	Trace     bool
}

func Default() Config {
	return Config{
		APIURL: search.DefaultBaseURL,
		Limit:  8,
	}
}

// LoadEnv overlays MEALEE_* variables onto c. lookup is usually os.LookupEnv.
func (c *Config) LoadEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("MEALEE_API_URL"); ok && v != "" {
		c.APIURL = v
	}
	if v, ok := lookup("MEALEE_PROXY"); ok {
		c.ProxyURL = v
	}
	if v, ok := lookup("MEALEE_USER_AGENT"); ok {
		c.UserAgent = v
	}
	if v, ok := lookup("MEALEE_LOG_FILE"); ok {
		c.LogFile = v
	}
	if v, ok := lookup("MEALEE_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("MEALEE_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v, ok := lookup("MEALEE_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("MEALEE_LIMIT: %w", err)
		}
		c.Limit = n
	}
	return nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api url %q must be absolute", c.APIURL)
	}
	if c.ProxyURL != "" {
		if _, err := url.Parse(c.ProxyURL); err != nil {
			return fmt.Errorf("proxy url: %w", err)
		}
	}
	if c.Limit < 2 || c.Limit > MaxLimit {
		return fmt.Errorf("limit %d must be between 2 and %d", c.Limit, MaxLimit)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout %s must not be negative", c.Timeout)
	}
	return nil
}

// ClientOptions maps the config onto search client options.
func (c Config) ClientOptions() search.Options {
	return search.Options{
		BaseURL:   c.APIURL,
		ProxyURL:  c.ProxyURL,
		UserAgent: c.UserAgent,
		Timeout:   c.Timeout,
	}
}
