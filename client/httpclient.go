package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// conn is the transport shared by [Flow] and [Client]. It wraps the
// std-lib *http.Client, which can be customized via optional funcs.
type conn struct {
	c       *http.Client
	logger  *slog.Logger
	tracer  trace.Tracer
	baseURL *url.URL
}

func build(optFns ...Option) (*conn, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	base, err := url.Parse(DefaultBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing default base url: %w", err)
	}

	cn := &conn{
		c:       &http.Client{},
		logger:  slog.Default(),
		tracer:  noop.NewTracerProvider().Tracer(tracerName),
		baseURL: base,
	}

	if opts.client != nil {
		hc := *opts.client
		cn.c = &hc
	}

	if opts.logger != nil {
		cn.logger = opts.logger
	}

	if opts.tracerProvider != nil {
		cn.tracer = opts.tracerProvider.Tracer(tracerName)
	}

	if opts.baseURL != nil {
		cn.baseURL = opts.baseURL
	}

	if opts.timeout != nil {
		cn.c.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		cn.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case cn.c.Transport != nil:
		transport = cn.c.Transport
	default:
		transport = http.DefaultTransport
	}

	ua := defaultUserAgent
	if opts.userAgent != "" {
		ua = opts.userAgent
	}
	cn.c.Transport = userAgent{value: ua, base: transport}

	return cn, nil
}

// endpoint resolves path segments against the base URL.
func (cn *conn) endpoint(opts []URLOption, segments ...string) *url.URL {
	u := cn.baseURL.JoinPath(segments...)
	return URL(u.Scheme, u.Host, u.Path, opts...)
}

// exec runs the request, classifies the response and hands the payload
// to fn when the call succeeded. resource names the call in logs and
// spans, since request paths may embed tokens.
func (cn *conn) exec(req *http.Request, resource string, fn execFn) (json.RawMessage, error) {
	ctx, span := cn.tracer.Start(req.Context(), "flowdock."+resource, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	reqID := req.Header.Get(RequestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
		req.Header.Set(RequestIDHeader, reqID)
	}

	span.SetAttributes(
		attribute.String("http.request.method", req.Method),
		attribute.String("flowdock.resource", resource),
		attribute.String("flowdock.request_id", reqID),
	)

	req = req.WithContext(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := cn.c.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "http do")
		return nil, fmt.Errorf("exec http do: %w", err)
	}

	defer func() {
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			cn.logger.Error("failed to discard unused body", "error", err)
		}
		if err := resp.Body.Close(); err != nil {
			cn.logger.Error("failed to close response body", "error", err)
		}
	}()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	cn.logger.Debug("flowdock request", "method", req.Method, "resource", resource, "status", resp.StatusCode, "request_id", reqID)

	payload, err := handleResponse(resp)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unsuccessful response")
		return nil, err
	}

	if fn != nil {
		if err := fn(resp, payload); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("exec fn: %w", err)
		}
	}

	return payload, nil
}

// decodeInto returns an execFn writing the payload to the destination
// configured by opts, if any.
func decodeInto(opts []DoOption) (execFn, error) {
	var settings doOpts
	for _, opt := range opts {
		if err := opt(&settings); err != nil {
			return nil, err
		}
	}

	if settings.responseBody == nil {
		return nil, nil
	}

	return func(_ *http.Response, payload json.RawMessage) error {
		d := json.NewDecoder(bytes.NewReader(payload))

		if settings.useJSONNum {
			d.UseNumber()
		}

		if err := d.Decode(settings.responseBody); err != nil {
			return fmt.Errorf("decoding body: %w", err)
		}

		return nil
	}, nil
}

// Request instantiates an *http.Request with the provided information.
// Content-Type defaults to `application/json`, or to
// `application/x-www-form-urlencoded` when a form is given via WithForm.
func Request(ctx context.Context, reqURL *url.URL, method string, opts ...RequestOption) (*http.Request, error) {
	var settings requestOpts
	for _, opt := range opts {
		err := opt(&settings)
		if err != nil {
			return nil, err
		}
	}

	contentType := "application/json"

	var payload bytes.Buffer
	switch {
	case settings.form != nil:
		contentType = "application/x-www-form-urlencoded"
		payload.WriteString(settings.form.Encode())
	case settings.body != nil:
		if err := json.NewEncoder(&payload).Encode(settings.body); err != nil {
			return nil, fmt.Errorf("encoding request payload: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), &payload)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	if settings.contentType != nil {
		contentType = *settings.contentType
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	for k, v := range settings.headers {
		for _, element := range v {
			req.Header.Add(k, element)
		}
	}

	if settings.basicAuth != nil {
		req.SetBasicAuth(settings.basicAuth.username, settings.basicAuth.password)
	}

	return req, nil
}

// URL creates a url.URL for use in Request.
func URL(scheme, host, path string, opts ...URLOption) *url.URL {
	var settings urlOpts
	for _, opt := range opts {
		opt(&settings)
	}

	endpoint := url.URL{
		Scheme: scheme,
		Host:   host,
		Path:   path,
	}

	if settings.queryStrings != nil {
		queryParams := url.Values{}
		for k, v := range settings.queryStrings {
			queryParams.Add(k, v)
		}

		endpoint.RawQuery = queryParams.Encode()
	}

	return &endpoint
}

// joinTokens trims tokens, drops blank ones and joins the rest with a comma.
func joinTokens(tokens []string) string {
	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, ",")
}
