package hibp

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"github.com/dgraph-io/ristretto"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.pwnedpasswords.com"

const (
	requestTimeout = 5 * time.Second
	cacheTTL       = 30 * time.Minute
)

// Status is the outcome of a breach lookup. A failed check is its own
// state so callers can tell "not in the corpus" apart from "the corpus
// could not be consulted".
type Status int

const (
	StatusClean Status = iota
	StatusBreached
	StatusFailed
)

type Result struct {
	Status Status
	// Count is only meaningful when Status is StatusBreached.
	Count int
	Err   error
}

func (r Result) Breached() bool {
	return r.Status == StatusBreached
}

func (r Result) Failed() bool {
	return r.Status == StatusFailed
}

// Client queries the Pwned Passwords range API. Only the first 5 hex
// characters of the SHA-1 hash are ever sent; the suffix match happens
// locally, so the service never learns the queried password.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
	cache   *ristretto.Cache
}

func NewClient() *Client {
	return NewClientWithBaseURL(DefaultBaseURL)
}

func NewClientWithBaseURL(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	// A dead cache only costs extra API round trips, so don't fail here.
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1 << 14,
		MaxCost:     32 << 20,
		BufferItems: 64,
	})
	if err != nil {
		log.Warn().Err(err).Msg("range cache unavailable, every check will hit the API")
		cache = nil
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    initHttpClient(),
		cache:   cache,
	}
}

func initHttpClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.Logger = nil

	// One attempt per check. A failed lookup degrades to a warning, it is
	// never worth retrying against an interactive prompt.
	client.RetryMax = 0

	client.HTTPClient = &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			DisableCompression: false,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			DialContext: (&net.Dialer{
				Timeout:   requestTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          10,
			IdleConnTimeout:       10 * time.Second,
			TLSHandshakeTimeout:   requestTimeout,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	return client
}

// Check looks the password up in the breach corpus. Network and protocol
// failures are folded into a StatusFailed result instead of an error: a
// broken lookup should never abort the evaluation that requested it.
func (c *Client) Check(ctx context.Context, password string) Result {
	sum := sha1.Sum([]byte(password))
	return c.CheckHash(ctx, strings.ToUpper(hex.EncodeToString(sum[:])))
}

// CheckHash is Check for callers that already hold the full 40 character
// uppercase SHA-1 hex hash.
func (c *Client) CheckHash(ctx context.Context, hash string) Result {
	prefix, suffix := hash[:5], hash[5:]

	body, err := c.fetchRange(ctx, prefix)
	if err != nil {
		log.Warn().Err(err).Msg("could not consult the breach lookup service, result will read as not found")
		return Result{Status: StatusFailed, Err: err}
	}

	return scanRange(body, suffix)
}

func (c *Client) fetchRange(ctx context.Context, prefix string) ([]byte, error) {
	if c.cache != nil {
		if hit, ok := c.cache.Get(prefix); ok {
			return hit.([]byte), nil
		}
	}

	req, err := rangeHttpRequest(ctx, c.baseURL, prefix)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			log.Warn().Err(err).Msgf("error closing body for range %s", prefix)
		}
	}(res.Body)

	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("request for range %s failed with status [%d] %s", prefix, res.StatusCode, res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.SetWithTTL(prefix, body, int64(len(body)), cacheTTL)
	}

	return body, nil
}

func rangeHttpRequest(ctx context.Context, baseURL, prefix string) (*retryablehttp.Request, error) {
	req, err := retryablehttp.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/range/%s", baseURL, prefix),
		nil,
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "golang-pwd-audit/1.0")
	return req, nil
}

// scanRange walks the SUFFIX:COUNT records of a range response looking for
// an exact suffix match. Malformed records are skipped, the rest of the
// range is still useful.
func scanRange(body []byte, suffix string) Result {
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		recSuffix, recCount, ok := strings.Cut(line, ":")
		if !ok {
			log.Debug().Msgf("skipping malformed range record %q", line)
			continue
		}

		if recSuffix != suffix {
			continue
		}

		count, err := strconv.Atoi(strings.TrimSpace(recCount))
		if err != nil {
			log.Debug().Msgf("skipping range record with unparsable count %q", line)
			continue
		}

		return Result{Status: StatusBreached, Count: count}
	}

	return Result{Status: StatusClean}
}
