package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/service-console/internal/logging"
	"github.com/carson-networks/service-console/internal/validation"
)

const defaultTimeout = 10 * time.Second

// Client performs JSON requests against one backend base address.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *logrus.Logger
	validate   *validator.Validate
}

type Option func(*Client)

// WithHTTPClient replaces the default logging HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger *logrus.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.SetupLogging()
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Transport: logging.NewTransport(nil, c.logger),
			Timeout:   c.timeout,
		}
	}
	c.validate = validation.New()
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends body (when non-nil) as JSON to path and decodes a 2xx response into out
// (when non-nil). Failures are always *Error, except for request construction bugs.
func (c *Client) Do(ctx context.Context, operation, method, path string, body, out any) error {
	ctx = logging.WithOperation(ctx, operation)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode %s request: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("apiclient: build %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(logging.RequestIDHeader, uuid.Must(uuid.NewV4()).String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return readError(resp.StatusCode, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := httpError(resp.StatusCode, raw)
		if c.logger.IsLevelEnabled(logrus.DebugLevel) {
			c.logger.WithField("operation", operation).Debugf("Client.%v.ErrorBody %s", operation, spew.Sdump(string(raw)))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return decodeError(resp.StatusCode, errors.New("empty body"))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return decodeError(resp.StatusCode, err)
	}
	if err := c.validateResponse(out); err != nil {
		return decodeError(resp.StatusCode, err)
	}

	return nil
}

// validateResponse checks a decoded struct, or every struct element of a decoded slice,
// against its validate tags.
func (c *Client) validateResponse(out any) error {
	value := reflect.Indirect(reflect.ValueOf(out))
	switch value.Kind() {
	case reflect.Struct:
		return validation.Convert(c.validate.Struct(value.Interface()))
	case reflect.Slice:
		for i := 0; i < value.Len(); i++ {
			elem := reflect.Indirect(value.Index(i))
			if elem.Kind() != reflect.Struct {
				continue
			}
			if err := c.validate.Struct(elem.Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, validation.Convert(err))
			}
		}
	}
	return nil
}

func (c *Client) Get(ctx context.Context, operation, path string, out any) error {
	return c.Do(ctx, operation, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, operation, path string, body, out any) error {
	return c.Do(ctx, operation, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, operation, path string, body, out any) error {
	return c.Do(ctx, operation, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, operation, path string, out any) error {
	return c.Do(ctx, operation, http.MethodDelete, path, nil, out)
}

// Message is the `{"message": ...}` body returned by health checks and deletes.
type Message struct {
	Message string `json:"message"`
}

// Health calls GET / on the backend.
func (c *Client) Health(ctx context.Context) (*Message, error) {
	var out Message
	if err := c.Get(ctx, "Health", "/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
