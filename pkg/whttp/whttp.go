package whttp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/atmdb/atmdb/internal/utils"
	"github.com/hashicorp/go-retryablehttp"
)

const USER_AGENT = "atmdb/1.0 (+codex browser)"

// ErrStatus is returned (wrapped in a *StatusError) for non-2xx responses.
var ErrStatus = errors.New("unexpected HTTP status")

type WHTTPHeader struct {
	Name  string
	Value string
}

type WHTTPReq struct {
	URL     string
	Method  string
	Headers []WHTTPHeader
}

type WHTTPRes struct {
	StatusCode int
	Body       []byte
}

// StatusError carries the status of a failed request.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

func (e *StatusError) Unwrap() error { return ErrStatus }

// NewClient builds a retrying client. Retry attempts are logged at debug level.
func NewClient(proxy string, retries int) (*retryablehttp.Client, error) {
	client := retryablehttp.NewClient()
	client.RetryMax = retries
	client.Logger = leveledLogger{}
	// Hand the last response back once retries run out so callers get a
	// *StatusError instead of a generic "giving up" error.
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	if proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		client.HTTPClient.Transport = &http.Transport{
			Proxy: http.ProxyURL(proxyURL),
		}
	}
	return client, nil
}

// SendHTTPRequest performs the request and reads the whole body. A non-2xx
// status is reported as a *StatusError.
func SendHTTPRequest(ctx context.Context, wReq *WHTTPReq, client *retryablehttp.Client) (*WHTTPRes, error) {
	if client == nil {
		var err error
		if client, err = NewClient("", 0); err != nil {
			return nil, err
		}
	}

	method := wReq.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, wReq.URL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", USER_AGENT)
	req.Header.Set("Accept", "application/json")
	for _, h := range wReq.Headers {
		req.Header.Add(h.Name, h.Value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: wReq.URL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return &WHTTPRes{StatusCode: resp.StatusCode, Body: body}, nil
}

// IsURL reports whether location should be fetched over HTTP.
func IsURL(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// leveledLogger routes retryablehttp's logging into logrus.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, kv ...interface{}) {
	utils.Log.WithFields(fields(kv)).Error(msg)
}

func (leveledLogger) Info(msg string, kv ...interface{}) {
	utils.Log.WithFields(fields(kv)).Debug(msg)
}

func (leveledLogger) Debug(msg string, kv ...interface{}) {
	utils.Log.WithFields(fields(kv)).Debug(msg)
}

func (leveledLogger) Warn(msg string, kv ...interface{}) {
	utils.Log.WithFields(fields(kv)).Warn(msg)
}

func fields(kv []interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return out
}
