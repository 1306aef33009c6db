package flowdock_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/adamwoolhether/flowdock"
	"github.com/adamwoolhether/flowdock/client"
)

func ExampleNewFlow() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		fmt.Println(r.URL.Path, r.PostForm.Get("external_user_name"))
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	f, err := flowdock.NewFlow(client.FlowConfig{Tokens: []string{"t1", "t2"}, ExternalUserName: "deploybot"},
		client.WithBaseURL(ts.URL+"/v1"),
		client.WithTimeout(5*time.Second),
	)
	if err != nil {
		fmt.Println("build error:", err)
		return
	}

	if err := f.PushToChat(context.Background(), client.ChatMessage{Content: "deployed"}); err != nil {
		fmt.Println("push error:", err)
		return
	}
	// Output: /v1/messages/chat/t1,t2 deploybot
}

func ExampleNewClient() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `[{"id":"acme:main"}]`)
	}))
	defer ts.Close()

	c, err := flowdock.NewClient(client.ClientConfig{APIToken: "tok"}, client.WithBaseURL(ts.URL+"/v1"))
	if err != nil {
		fmt.Println("build error:", err)
		return
	}

	var flows []struct{ ID string }
	if _, err := c.Get(context.Background(), "/flows", nil, client.WithDestination(&flows)); err != nil {
		fmt.Println("get error:", err)
		return
	}

	fmt.Println(flows[0].ID)
	// Output: acme:main
}
