package client

import (
	"encoding/json"
	"net/http"
)

const (
	// DefaultBaseURL is the root of the Flowdock REST API.
	DefaultBaseURL = "https://api.flowdock.com/v1"

	// FormatHTML is the only content format the team inbox accepts.
	FormatHTML = "html"

	// MaxExternalUserNameLength caps the chat display name.
	MaxExternalUserNameLength = 16

	// RequestIDHeader carries a per-request id. A caller supplied value is kept.
	RequestIDHeader = "X-Request-ID"

	defaultUserAgent = "flowdock-go/1.0"
	tracerName       = "github.com/adamwoolhether/flowdock/client"
)

// maxErrBodySize caps the raw body text kept on an [APIError].
const maxErrBodySize = 4 << 10 // 4KB

// Chat events understood by the messages endpoints.
const (
	EventMessage    = "message"
	EventComment    = "comment"
	EventActivity   = "activity"
	EventDiscussion = "discussion"
)

// execFn represents a func to operate on a classified payload.
type execFn func(resp *http.Response, payload json.RawMessage) error

// Sender identifies who a team inbox message is from.
type Sender struct {
	Name    string `json:"name,omitempty" yaml:"name"`
	Address string `json:"address" yaml:"address"`
}

// FlowConfig holds the destination and defaults bound to a [Flow].
type FlowConfig struct {
	// Tokens are flow API tokens. More than one token delivers the
	// message to every listed flow.
	Tokens []string

	// Source and Project label where team inbox messages come from.
	Source  string
	Project string

	// From and ReplyTo are the default team inbox sender details.
	From    *Sender
	ReplyTo string

	// ExternalUserName is the default display name for chat messages.
	ExternalUserName string
}

// ClientConfig holds the credentials of a [Client].
type ClientConfig struct {
	APIToken  string
	FlowToken string
}

// TeamInboxMessage is the input of [Flow.PushToTeamInbox]. Source,
// Project, From and ReplyTo fall back to the flow defaults when empty.
type TeamInboxMessage struct {
	Subject string
	Content string
	Source  string
	Project string
	From    *Sender
	ReplyTo string
	Tags    []string
	Link    string
}

// ChatMessage is the input of [Flow.PushToChat].
type ChatMessage struct {
	Content          string
	ExternalUserName string
	Tags             []string

	// ThreadID or MessageID address a reply to an existing
	// thread or message.
	ThreadID  string
	MessageID string
}

// FlowMessage is the input of [Client.ChatMessage]. A non-zero
// MessageID posts a comment on that message.
type FlowMessage struct {
	Flow      string
	Content   string
	Tags      []string
	MessageID int64
	ThreadID  string
}

// PrivateMessage is the input of [Client.PrivateMessage].
type PrivateMessage struct {
	UserID  string
	Content string
	Tags    []string
}

// ThreadPost is an activity or discussion posted to a thread with a
// flow token, see [Client.PostToThread].
type ThreadPost struct {
	Event            string   `json:"event"`
	Author           Author   `json:"author"`
	Title            string   `json:"title"`
	Body             string   `json:"body,omitempty"`
	ExternalThreadID string   `json:"external_thread_id"`
	Thread           *Thread  `json:"thread,omitempty"`
	Tags             []string `json:"tags,omitempty"`
}

// Author is the author of a [ThreadPost].
type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Thread describes the thread a [ThreadPost] belongs to.
type Thread struct {
	Title       string        `json:"title"`
	Body        string        `json:"body,omitempty"`
	ExternalURL string        `json:"external_url,omitempty"`
	Status      *ThreadStatus `json:"status,omitempty"`
	Fields      []ThreadField `json:"fields,omitempty"`
}

// ThreadStatus is the colored label shown on a thread.
type ThreadStatus struct {
	Color string `json:"color"`
	Value string `json:"value"`
}

// ThreadField is a label/value pair shown on a thread.
type ThreadField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
