package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// Flow pushes messages to one or more flows identified by flow tokens.
//
// Source, Project and ExternalUserName are sticky: a send that supplies a
// non-blank value replaces the flow default for every later send, even
// when that send then fails validation. A mutex guards these defaults,
// so concurrent senders see the last write.
type Flow struct {
	conn   *conn
	tokens string

	mu               sync.Mutex
	source           string
	project          string
	from             Sender
	replyTo          string
	externalUserName string
}

// NewFlow builds a [Flow] bound to cfg.Tokens. At least one non-blank
// token is required.
func NewFlow(cfg FlowConfig, optFns ...Option) (*Flow, error) {
	tokens := joinTokens(cfg.Tokens)
	if tokens == "" {
		return nil, newInvalidParameterError("tokens", "flow must have at least one non-blank token")
	}

	cn, err := build(optFns...)
	if err != nil {
		return nil, err
	}

	f := &Flow{
		conn:             cn,
		tokens:           tokens,
		source:           cfg.Source,
		project:          cfg.Project,
		replyTo:          cfg.ReplyTo,
		externalUserName: cfg.ExternalUserName,
	}
	if cfg.From != nil {
		f.from = *cfg.From
	}

	return f, nil
}

// Source returns the current default source.
func (f *Flow) Source() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.source
}

// Project returns the current default project.
func (f *Flow) Project() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.project
}

// ExternalUserName returns the current default chat display name.
func (f *Flow) ExternalUserName() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.externalUserName
}

type sourceRequest struct {
	Source string `json:"source" validate:"nonblank,label"`
}

type teamInboxRequest struct {
	Project     string `json:"project" validate:"omitempty,label"`
	Subject     string `json:"subject" validate:"nonblank"`
	Content     string `json:"content" validate:"nonblank"`
	FromAddress string `json:"from_address" validate:"nonblank"`
}

// PushToTeamInbox sends msg to the team inbox of every bound flow.
func (f *Flow) PushToTeamInbox(ctx context.Context, msg TeamInboxMessage) error {
	f.mu.Lock()
	if !IsBlank(msg.Source) {
		f.source = msg.Source
	}
	source := f.source

	// An invalid source leaves the project default untouched.
	if err := check(sourceRequest{Source: source}); err != nil {
		f.mu.Unlock()
		return err
	}

	if !IsBlank(msg.Project) {
		f.project = msg.Project
	}
	project, from, replyTo := f.project, f.from, f.replyTo
	f.mu.Unlock()

	if msg.From != nil {
		from = *msg.From
	}
	if !IsBlank(msg.ReplyTo) {
		replyTo = msg.ReplyTo
	}
	if IsBlank(project) {
		project = ""
	}

	err := check(teamInboxRequest{
		Project:     project,
		Subject:     msg.Subject,
		Content:     msg.Content,
		FromAddress: from.Address,
	})
	if err != nil {
		return err
	}

	form := url.Values{
		"source":       {source},
		"format":       {FormatHTML},
		"from_address": {from.Address},
		"subject":      {msg.Subject},
		"content":      {msg.Content},
	}
	setIfPresent(form, "from_name", from.Name)
	setIfPresent(form, "reply_to", replyTo)
	setIfPresent(form, "tags", strings.Join(FilterTags(msg.Tags), ","))
	setIfPresent(form, "project", project)
	setIfPresent(form, "link", msg.Link)

	return f.push(ctx, "team_inbox", form)
}

type chatRequest struct {
	Content          string `json:"content" validate:"nonblank"`
	ExternalUserName string `json:"external_user_name" validate:"nonblank,nowhitespace,username"`
}

// PushToChat posts msg to the chat of every bound flow as an external user.
func (f *Flow) PushToChat(ctx context.Context, msg ChatMessage) error {
	if IsBlank(msg.Content) {
		return newInvalidParameterError("content", "must not be blank")
	}

	f.mu.Lock()
	if !IsBlank(msg.ExternalUserName) {
		f.externalUserName = msg.ExternalUserName
	}
	name := f.externalUserName
	f.mu.Unlock()

	if err := check(chatRequest{Content: msg.Content, ExternalUserName: name}); err != nil {
		return err
	}

	form := url.Values{
		"content":            {msg.Content},
		"external_user_name": {name},
	}
	setIfPresent(form, "tags", strings.Join(FilterTags(msg.Tags), ","))
	setIfPresent(form, "thread_id", msg.ThreadID)
	setIfPresent(form, "message_id", msg.MessageID)

	return f.push(ctx, "chat", form)
}

func (f *Flow) push(ctx context.Context, resource string, form url.Values) error {
	req, err := Request(ctx, f.conn.endpoint(nil, "messages", resource, f.tokens), http.MethodPost, WithForm(form))
	if err != nil {
		return err
	}

	if _, err := f.conn.exec(req, resource, nil); err != nil {
		return err
	}

	return nil
}

// FilterTags drops blank tags, keeping order and duplicates.
func FilterTags(tags []string) []string {
	kept := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !IsBlank(tag) {
			kept = append(kept, tag)
		}
	}
	return kept
}

func setIfPresent(form url.Values, key, value string) {
	if !IsBlank(value) {
		form.Set(key, value)
	}
}
