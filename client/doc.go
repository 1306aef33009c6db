// Package client implements the Flowdock API handles built on [net/http].
//
// # Pushing to a Flow
//
// A [Flow] is bound to one or more flow tokens and carries default
// sender details for the team inbox and chat:
//
//	f, err := client.NewFlow(client.FlowConfig{
//		Tokens: []string{"flow-token"},
//		Source: "myapp",
//		From:   &client.Sender{Name: "Eric Example", Address: "eric@example.com"},
//	})
//	err = f.PushToTeamInbox(ctx, client.TeamInboxMessage{
//		Subject: "Hello World",
//		Content: "<h1>Hi</h1>",
//		Tags:    []string{"cool", "stuff"},
//	})
//
// Source, Project and ExternalUserName given on a single call become the
// new defaults of that [Flow].
//
// # REST API
//
// A [Client] authenticates with an account API token:
//
//	c, err := client.NewClient(client.ClientConfig{APIToken: "token"})
//	var flows []Flowish
//	_, err = c.Get(ctx, "/flows", nil, client.WithDestination(&flows))
//
// [Client.PostToThread] uses a flow token instead.
//
// # Errors
//
// Every operation returns one of:
//   - [InvalidParameterError] when input is rejected before any request is made,
//   - [NotFoundError] when the API answers 404,
//   - [APIError] for any other unsuccessful or undecodable response.
//
// Use [errors.Is] with [ErrInvalidParameter], [ErrNotFound] or [ErrAPI]
// to branch on the kind. Failures of the underlying transport are
// returned wrapped as they are.
package client
