package client_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// captured is what the fake API saw for a single request.
type captured struct {
	method string
	path   string
	query  url.Values
	header http.Header
	form   url.Values
	json   map[string]any
}

type fakeAPI struct {
	server *httptest.Server
	reqs   chan captured
}

// newFakeAPI answers every request with status and body, and records the
// request on a buffered channel.
func newFakeAPI(t *testing.T, status int, body string) *fakeAPI {
	t.Helper()

	api := fakeAPI{reqs: make(chan captured, 16)}

	handler := func(w http.ResponseWriter, r *http.Request) {
		c := captured{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.Query(),
			header: r.Header.Clone(),
		}

		switch r.Header.Get("Content-Type") {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			c.form = r.PostForm
		default:
			b, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if len(b) > 0 {
				if err := json.Unmarshal(b, &c.json); err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
			}
		}

		api.reqs <- c

		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}

	api.server = httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(api.server.Close)

	return &api
}

// baseURL mirrors the path layout of the real API.
func (a *fakeAPI) baseURL() string {
	return a.server.URL + "/v1"
}

func (a *fakeAPI) next(t *testing.T) captured {
	t.Helper()

	select {
	case c := <-a.reqs:
		return c
	default:
		t.Fatal("expected the fake api to receive a request")
		return captured{}
	}
}

func (a *fakeAPI) expectNone(t *testing.T) {
	t.Helper()

	select {
	case c := <-a.reqs:
		t.Fatalf("expected no request, got %s %s", c.method, c.path)
	default:
	}
}
