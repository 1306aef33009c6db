package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Client calls the Flowdock REST API with an account API token, or
// posts to threads with a flow token.
type Client struct {
	conn      *conn
	apiToken  string
	flowToken string
}

// NewClient builds a [Client]. At least one of cfg.APIToken and
// cfg.FlowToken is required.
func NewClient(cfg ClientConfig, optFns ...Option) (*Client, error) {
	if IsBlank(cfg.APIToken) && IsBlank(cfg.FlowToken) {
		return nil, newInvalidParameterError("api_token", "client must have an api token or a flow token")
	}

	cn, err := build(optFns...)
	if err != nil {
		return nil, err
	}

	return &Client{
		conn:      cn,
		apiToken:  cfg.APIToken,
		flowToken: cfg.FlowToken,
	}, nil
}

// Get fetches path with the given query parameters.
func (c *Client) Get(ctx context.Context, path string, query map[string]string, opts ...DoOption) (json.RawMessage, error) {
	var urlOpts []URLOption
	if len(query) > 0 {
		urlOpts = append(urlOpts, WithQueryStrings(query))
	}
	return c.do(ctx, http.MethodGet, c.conn.endpoint(urlOpts, path), nil, "api", opts)
}

// Post sends body as JSON to path.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...DoOption) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, c.conn.endpoint(nil, path), body, "api", opts)
}

// Put sends body as JSON to path.
func (c *Client) Put(ctx context.Context, path string, body any, opts ...DoOption) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, c.conn.endpoint(nil, path), body, "api", opts)
}

// Delete deletes path.
func (c *Client) Delete(ctx context.Context, path string, opts ...DoOption) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, c.conn.endpoint(nil, path), nil, "api", opts)
}

type flowMessageBody struct {
	Flow     string   `json:"flow" validate:"nonblank"`
	Content  string   `json:"content" validate:"nonblank"`
	Event    string   `json:"event"`
	Tags     []string `json:"tags"`
	Message  int64    `json:"message,omitempty"`
	ThreadID string   `json:"thread_id,omitempty"`
}

// ChatMessage posts msg to a flow as the token owner. With a MessageID
// it is posted as a comment on that message.
func (c *Client) ChatMessage(ctx context.Context, msg FlowMessage, opts ...DoOption) (json.RawMessage, error) {
	body := flowMessageBody{
		Flow:     msg.Flow,
		Content:  msg.Content,
		Event:    EventMessage,
		Tags:     FilterTags(msg.Tags),
		Message:  msg.MessageID,
		ThreadID: msg.ThreadID,
	}
	if msg.MessageID != 0 {
		body.Event = EventComment
	}

	if err := c.requireAPIToken(); err != nil {
		return nil, err
	}
	if err := check(body); err != nil {
		return nil, err
	}

	resource := body.Event + "s"
	return c.do(ctx, http.MethodPost, c.conn.endpoint(nil, resource), body, resource, opts)
}

type privateMessageBody struct {
	Content string   `json:"content" validate:"nonblank"`
	Event   string   `json:"event"`
	Tags    []string `json:"tags,omitempty"`
}

// PrivateMessage sends msg to a single user.
func (c *Client) PrivateMessage(ctx context.Context, msg PrivateMessage, opts ...DoOption) (json.RawMessage, error) {
	if err := c.requireAPIToken(); err != nil {
		return nil, err
	}
	if IsBlank(msg.UserID) {
		return nil, newInvalidParameterError("user_id", "must not be blank")
	}

	body := privateMessageBody{
		Content: msg.Content,
		Event:   EventMessage,
		Tags:    FilterTags(msg.Tags),
	}
	if err := check(body); err != nil {
		return nil, err
	}

	u := c.conn.endpoint(nil, "private", msg.UserID, "messages")
	return c.do(ctx, http.MethodPost, u, body, "private_messages", opts)
}

type threadPostBody struct {
	ThreadPost
	FlowToken string `json:"flow_token"`
}

// PostToThread posts thread with the flow token instead of the account
// credentials.
func (c *Client) PostToThread(ctx context.Context, thread ThreadPost, opts ...DoOption) (json.RawMessage, error) {
	if IsBlank(c.flowToken) {
		return nil, newInvalidParameterError("flow_token", "client must have a flow token")
	}

	fn, err := decodeInto(opts)
	if err != nil {
		return nil, err
	}

	body := threadPostBody{ThreadPost: thread, FlowToken: c.flowToken}
	req, err := Request(ctx, c.conn.endpoint(nil, "messages"), http.MethodPost, WithPayload(body))
	if err != nil {
		return nil, err
	}

	return c.conn.exec(req, "thread", fn)
}

func (c *Client) do(ctx context.Context, method string, u *url.URL, body any, resource string, opts []DoOption) (json.RawMessage, error) {
	if err := c.requireAPIToken(); err != nil {
		return nil, err
	}

	fn, err := decodeInto(opts)
	if err != nil {
		return nil, err
	}

	reqOpts := []RequestOption{WithBasicAuth(c.apiToken, "")}
	if body != nil {
		reqOpts = append(reqOpts, WithPayload(body))
	}

	req, err := Request(ctx, u, method, reqOpts...)
	if err != nil {
		return nil, err
	}

	return c.conn.exec(req, resource, fn)
}

func (c *Client) requireAPIToken() error {
	if IsBlank(c.apiToken) {
		return newInvalidParameterError("api_token", "client must have an api token")
	}
	return nil
}
