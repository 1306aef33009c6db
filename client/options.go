package client

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Option is a functional option for configuring a [Flow] or [Client].
type Option func(*options) error
type options struct {
	client            *http.Client
	rt                http.RoundTripper
	timeout           *time.Duration
	userAgent         string
	noFollowRedirects bool
	logger            *slog.Logger
	tracerProvider    trace.TracerProvider
	baseURL           *url.URL
}

// WithHTTPClient replaces the default [http.Client] used for API calls.
// The given client is copied, so later changes to it have no effect.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		c.client = hc
		return nil
	}
}

// WithTransport sets a custom [http.RoundTripper] as the base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		c.rt = rt
		return nil
	}
}

// WithTimeout sets the overall request timeout on the underlying [http.Client].
func WithTimeout(d time.Duration) Option {
	return func(c *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		c.timeout = &d
		return nil
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(header string) Option {
	return func(c *options) error {
		if header == "" {
			return errors.New("user agent must not be empty")
		}
		c.userAgent = header
		return nil
	}
}

// WithNoFollowRedirects prevents API calls from following HTTP redirects.
func WithNoFollowRedirects() Option {
	return func(c *options) error {
		c.noFollowRedirects = true
		return nil
	}
}

// WithLogger injects a custom [slog.Logger].
func WithLogger(logger *slog.Logger) Option {
	return func(c *options) error {
		c.logger = logger
		return nil
	}
}

// WithTracerProvider records a client span for every API call using tp.
// A no-op provider is used when this option is absent.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *options) error {
		if tp == nil {
			return errors.New("tracer provider must not be nil")
		}
		c.tracerProvider = tp
		return nil
	}
}

// WithBaseURL points API calls at rawURL instead of [DefaultBaseURL].
func WithBaseURL(rawURL string) Option {
	return func(c *options) error {
		u, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("parsing base url: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base url %q must be absolute", rawURL)
		}
		c.baseURL = u
		return nil
	}
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}

// DoOption is a functional option for the generic [Client] requests.
type DoOption func(options *doOpts) error

type doOpts struct {
	responseBody any
	useJSONNum   bool
}

// WithDestination decodes the response payload into bodyTemplate.
// bodyTemplate must be a pointer.
func WithDestination[T any](bodyTemplate *T) DoOption {
	return func(opts *doOpts) error {
		if bodyTemplate == nil {
			return errors.New("destination must not be nil")
		}
		opts.responseBody = bodyTemplate

		return nil
	}
}

// WithJSONNumb tells the JSON decoder to use [json.Decoder.UseNumber],
// preserving number precision as [json.Number] instead of float64.
func WithJSONNumb() DoOption {
	return func(opts *doOpts) error {
		opts.useJSONNum = true

		return nil
	}
}

// RequestOption is a functional option for [Request].
type RequestOption func(options *requestOpts) error

type requestOpts struct {
	body        any
	form        url.Values
	contentType *string
	headers     map[string][]string
	basicAuth   *basicAuth
}

type basicAuth struct {
	username string
	password string
}

// WithPayload sets the JSON-encoded request body.
func WithPayload(body any) RequestOption {
	return func(opts *requestOpts) error {
		if opts.form != nil {
			return errors.New("payload and form are mutually exclusive")
		}
		opts.body = body

		return nil
	}
}

// WithForm sets a form-encoded request body. The Content-Type defaults
// to "application/x-www-form-urlencoded".
func WithForm(form url.Values) RequestOption {
	return func(opts *requestOpts) error {
		if opts.body != nil {
			return errors.New("payload and form are mutually exclusive")
		}
		opts.form = form

		return nil
	}
}

// WithContentType overrides the default Content-Type header.
func WithContentType(contentType string) RequestOption {
	return func(opts *requestOpts) error {
		if contentType == "" {
			return errors.New("cannot use empty content type")
		}

		opts.contentType = &contentType

		return nil
	}
}

// WithHeaders adds custom headers to the outgoing request.
func WithHeaders(headers map[string][]string) RequestOption {
	return func(opts *requestOpts) error {
		opts.headers = headers

		return nil
	}
}

// WithBasicAuth authenticates the request with HTTP basic auth.
func WithBasicAuth(username, password string) RequestOption {
	return func(opts *requestOpts) error {
		if username == "" {
			return errors.New("basic auth username must not be empty")
		}
		opts.basicAuth = &basicAuth{username: username, password: password}

		return nil
	}
}

// URLOption is a functional option for [URL].
type URLOption func(options *urlOpts)

type urlOpts struct {
	queryStrings map[string]string
}

// WithQueryStrings appends query parameters to the URL.
func WithQueryStrings(queryKV map[string]string) URLOption {
	return func(opts *urlOpts) {
		opts.queryStrings = queryKV
	}
}
