package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adamwoolhether/flowdock/client"
)

func messageCmd(a *app) *cobra.Command {
	var msg client.FlowMessage

	cmd := &cobra.Command{
		Use:   "message",
		Short: "Post a chat message or comment to a flow with the API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient()
			if err != nil {
				return err
			}

			if msg.Content, err = a.content(msg.Content); err != nil {
				return err
			}

			payload, err := c.ChatMessage(cmd.Context(), msg)
			if err != nil {
				return err
			}

			return a.printPayload(payload)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&msg.Flow, "flow", "f", "", "flow id")
	flags.StringVar(&msg.Content, "content", "", "message content (default: stdin)")
	flags.StringArrayVar(&msg.Tags, "tag", nil, "message tag (repeatable)")
	flags.Int64Var(&msg.MessageID, "message-id", 0, "post as a comment on this message")
	flags.StringVar(&msg.ThreadID, "thread-id", "", "thread to reply to")

	return cmd
}

func privateCmd(a *app) *cobra.Command {
	var msg client.PrivateMessage

	cmd := &cobra.Command{
		Use:   "private",
		Short: "Send a private message to a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient()
			if err != nil {
				return err
			}

			if msg.Content, err = a.content(msg.Content); err != nil {
				return err
			}

			payload, err := c.PrivateMessage(cmd.Context(), msg)
			if err != nil {
				return err
			}

			return a.printPayload(payload)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&msg.UserID, "user-id", "", "recipient user id")
	flags.StringVar(&msg.Content, "content", "", "message content (default: stdin)")
	flags.StringArrayVar(&msg.Tags, "tag", nil, "message tag (repeatable)")

	return cmd
}

func threadCmd(a *app) *cobra.Command {
	var (
		post   client.ThreadPost
		thread client.Thread
	)

	cmd := &cobra.Command{
		Use:   "thread",
		Short: "Post an activity or discussion to a thread with the flow token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient()
			if err != nil {
				return err
			}

			if thread.Title != "" {
				post.Thread = &thread
			}

			payload, err := c.PostToThread(cmd.Context(), post)
			if err != nil {
				return err
			}

			return a.printPayload(payload)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&post.Event, "event", client.EventActivity, "activity or discussion")
	flags.StringVar(&post.Title, "title", "", "event title")
	flags.StringVar(&post.Body, "body", "", "event body (discussions)")
	flags.StringVar(&post.ExternalThreadID, "external-thread-id", "", "id of the thread in the external system")
	flags.StringVar(&post.Author.Name, "author-name", "", "author name")
	flags.StringVar(&post.Author.Avatar, "author-avatar", "", "author avatar url")
	flags.StringVar(&thread.Title, "thread-title", "", "thread title")
	flags.StringVar(&thread.Body, "thread-body", "", "thread body")
	flags.StringVar(&thread.ExternalURL, "thread-url", "", "thread url in the external system")
	flags.StringArrayVar(&post.Tags, "tag", nil, "event tag (repeatable)")

	return cmd
}

func apiCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Call the Flowdock REST API and print the JSON response",
	}

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		cmd.AddCommand(apiMethodCmd(a, method))
	}

	return cmd
}

func apiMethodCmd(a *app, method string) *cobra.Command {
	var (
		query []string
		data  string
	)

	cmd := &cobra.Command{
		Use:   strings.ToLower(method) + " PATH",
		Short: method + " a path relative to the API base url",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient()
			if err != nil {
				return err
			}

			var body any
			if data != "" {
				if !json.Valid([]byte(data)) {
					return errors.New("--data must be valid JSON")
				}
				body = json.RawMessage(data)
			}

			q, err := parseQuery(query)
			if err != nil {
				return err
			}

			var payload json.RawMessage
			switch method {
			case http.MethodGet:
				payload, err = c.Get(cmd.Context(), args[0], q)
			case http.MethodPost:
				payload, err = c.Post(cmd.Context(), args[0], body)
			case http.MethodPut:
				payload, err = c.Put(cmd.Context(), args[0], body)
			case http.MethodDelete:
				payload, err = c.Delete(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			return a.printPayload(payload)
		},
	}

	if method == http.MethodGet {
		cmd.Flags().StringArrayVarP(&query, "query", "q", nil, "query parameter as key=value (repeatable)")
	}
	if method == http.MethodPost || method == http.MethodPut {
		cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	}

	return cmd
}

func parseQuery(pairs []string) (map[string]string, error) {
	q := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid query %q, expected key=value", p)
		}
		q[k] = v
	}
	return q, nil
}
