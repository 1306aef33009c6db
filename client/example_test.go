package client_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/adamwoolhether/flowdock/client"
)

func ExampleFlow_PushToTeamInbox() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		fmt.Println(r.Method, r.URL.Path)
		fmt.Println(r.PostForm.Get("source"), r.PostForm.Get("tags"))
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	f, err := client.NewFlow(client.FlowConfig{
		Tokens: []string{"t1"},
		Source: "myapp",
		From:   &client.Sender{Name: "Eric Example", Address: "eric@example.com"},
	}, client.WithBaseURL(ts.URL+"/v1"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	err = f.PushToTeamInbox(context.Background(), client.TeamInboxMessage{
		Subject: "Hello World",
		Content: "<h1>Hi</h1>",
		Tags:    []string{"cool", "", "stuff"},
	})
	fmt.Println("error:", err)
	// Output:
	// POST /v1/messages/team_inbox/t1
	// myapp cool,stuff
	// error: <nil>
}

func ExampleFlow_PushToChat() {
	f, _ := client.NewFlow(client.FlowConfig{Tokens: []string{"t1"}})

	err := f.PushToChat(context.Background(), client.ChatMessage{
		Content:          "deploy finished",
		ExternalUserName: "Deploy Bot",
	})
	fmt.Println(errors.Is(err, client.ErrInvalidParameter))
	fmt.Println(err)
	// Output:
	// true
	// invalid parameter: external_user_name: must not contain whitespace
}

func ExampleClient_ChatMessage() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Println(r.Method, r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":12346,"event":"comment"}`)
	}))
	defer ts.Close()

	c, _ := client.NewClient(client.ClientConfig{APIToken: "tok"}, client.WithBaseURL(ts.URL+"/v1"))

	var resp struct {
		ID    int64  `json:"id"`
		Event string `json:"event"`
	}
	_, err := c.ChatMessage(context.Background(), client.FlowMessage{
		Flow:      "f1",
		Content:   "hi",
		MessageID: 12345,
	}, client.WithDestination(&resp))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(resp.ID, resp.Event)
	// Output:
	// POST /v1/comments
	// 12346 comment
}

func ExampleClient_Get() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Flow not found"}`)
	}))
	defer ts.Close()

	c, _ := client.NewClient(client.ClientConfig{APIToken: "tok"}, client.WithBaseURL(ts.URL+"/v1"))

	_, err := c.Get(context.Background(), "/flows/acme/missing", nil)

	var nf *client.NotFoundError
	if errors.As(err, &nf) {
		fmt.Println(nf.StatusCode, nf.Message)
	}
	// Output: 404 Flow not found
}
