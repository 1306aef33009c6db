//go:build integration

package client_test

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/adamwoolhether/flowdock/client"
)

func integrationEnv(t *testing.T, key string) string {
	t.Helper()

	v := os.Getenv(key)
	if v == "" {
		t.Skipf("%s not set", key)
	}
	return v
}

func TestIntegration_PushToTeamInbox(t *testing.T) {
	token := integrationEnv(t, "FLOWDOCK_TEST_FLOW_TOKEN")

	f, err := client.NewFlow(client.FlowConfig{
		Tokens: []string{token},
		Source: "flowdock-go",
		From:   &client.Sender{Name: "Integration", Address: "integration@example.com"},
	}, client.WithTimeout(30*time.Second))
	if err != nil {
		t.Fatalf("creating flow: %v", err)
	}

	err = f.PushToTeamInbox(t.Context(), client.TeamInboxMessage{
		Subject: "flowdock-go integration",
		Content: fmt.Sprintf("<p>sent at %s</p>", time.Now().UTC().Format(time.RFC3339)),
		Tags:    []string{"integration"},
	})
	if err != nil {
		t.Fatalf("pushing to team inbox: %v", err)
	}
}

func TestIntegration_PushToChat(t *testing.T) {
	token := integrationEnv(t, "FLOWDOCK_TEST_FLOW_TOKEN")

	f, err := client.NewFlow(client.FlowConfig{Tokens: []string{token}, ExternalUserName: "flowdockgo"},
		client.WithTimeout(30*time.Second))
	if err != nil {
		t.Fatalf("creating flow: %v", err)
	}

	if err := f.PushToChat(t.Context(), client.ChatMessage{Content: "integration ping"}); err != nil {
		t.Fatalf("pushing to chat: %v", err)
	}
}

func TestIntegration_BadFlowToken(t *testing.T) {
	f, err := client.NewFlow(client.FlowConfig{Tokens: []string{"definitely-not-a-token"}, ExternalUserName: "flowdockgo"},
		client.WithTimeout(30*time.Second))
	if err != nil {
		t.Fatalf("creating flow: %v", err)
	}

	err = f.PushToChat(t.Context(), client.ChatMessage{Content: "should not arrive"})
	if !errors.Is(err, client.ErrNotFound) && !errors.Is(err, client.ErrAPI) {
		t.Fatalf("expected the api to reject the token, got: %v", err)
	}
}

func TestIntegration_GetFlows(t *testing.T) {
	token := integrationEnv(t, "FLOWDOCK_TEST_API_TOKEN")

	c, err := client.NewClient(client.ClientConfig{APIToken: token}, client.WithTimeout(30*time.Second))
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	var flows []struct {
		ID string `json:"id"`
	}
	if _, err := c.Get(t.Context(), "/flows", nil, client.WithDestination(&flows)); err != nil {
		t.Fatalf("listing flows: %v", err)
	}
}
