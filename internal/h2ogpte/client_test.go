package h2ogpte

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key", 5*time.Second)
}

func TestCreateChatSession(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/chat/sessions" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("auth header = %q", r.Header.Get("Authorization"))
		}
		fmt.Fprint(w, `{"id":"sess-123"}`)
	})

	id, err := c.CreateChatSession(context.Background())
	if err != nil || id != "sess-123" {
		t.Fatalf("CreateChatSession = %q, %v", id, err)
	}
}

func TestCreateChatSession_MissingID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	if _, err := c.CreateChatSession(context.Background()); err == nil {
		t.Fatalf("want error for empty session id")
	}
}

func TestAgentCompletion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/chat/sessions/sess-1/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req CompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if !req.UseAgent || req.AgentMaxTurns != 7 || req.AgentAccuracy != "standard" {
			t.Errorf("request body: %+v", req)
		}
		fmt.Fprint(w, `{"content":"turn one ENDOFTURN turn two"}`)
	})

	got, err := c.AgentCompletion(context.Background(), "sess-1", CompletionRequest{
		Message:       "do it",
		AgentAccuracy: "standard",
		AgentMaxTurns: 7,
	})
	if err != nil {
		t.Fatalf("AgentCompletion: %v", err)
	}
	if got != "turn one ENDOFTURN turn two" {
		t.Fatalf("content = %q", got)
	}
}

func TestAgentCompletion_ClientErrorNotRetried(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad request", http.StatusBadRequest)
	})

	_, err := c.AgentCompletion(context.Background(), "s", CompletionRequest{})
	if err == nil {
		t.Fatalf("want error")
	}
	if calls != 1 {
		t.Fatalf("4xx must not be retried, got %d calls", calls)
	}
}

func TestSessionURL(t *testing.T) {
	c := NewClient("https://h2o.example", "k", time.Second)
	if got := c.SessionURL("abc"); got != "https://h2o.example/chats/abc" {
		t.Fatalf("SessionURL = %q", got)
	}
}

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{&apiError{status: 500}, true},
		{&apiError{status: 429}, true},
		{&apiError{status: 400}, false},
		{&apiError{status: 404}, false},
		{errors.New("dial tcp: connection refused"), true},
		{errors.New("unexpected EOF"), true},
		{errors.New("invalid request payload"), false},
	}
	for _, c := range cases {
		if got := isRetryableError(c.err); got != c.want {
			t.Fatalf("isRetryableError(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}
