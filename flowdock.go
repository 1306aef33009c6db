// Package flowdock exposes the Flow and Client builders.
package flowdock

import (
	"github.com/adamwoolhether/flowdock/client"
)

// NewFlow instantiates a new *client.Flow posting with the given flow tokens.
// If not specified, the default http.Client and http.Transport are used.
func NewFlow(cfg client.FlowConfig, opts ...client.Option) (*client.Flow, error) {
	return client.NewFlow(cfg, opts...)
}

// NewClient instantiates a new *client.Client for the authenticated REST API.
func NewClient(cfg client.ClientConfig, opts ...client.Option) (*client.Client, error) {
	return client.NewClient(cfg, opts...)
}
