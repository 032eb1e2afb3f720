package webhook

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/h2oai/h2ogpte-action/internal/relay"
)

// Dispatch hands a triggering event to the relay layer. It runs on the
// request goroutine and must return quickly; the actual agent session is the
// dispatcher's business.
type Dispatch func(repo string, commentID int64, req relay.Request)

// Handler validates and filters incoming webhook deliveries.
type Handler struct {
	secret   string
	trigger  string
	dispatch Dispatch
}

// NewHandler creates a webhook handler. trigger is the keyword a comment
// must contain (case-insensitive) to start a run.
func NewHandler(secret, trigger string, dispatch Dispatch) *Handler {
	return &Handler{secret: secret, trigger: trigger, dispatch: dispatch}
}

// issueCommentEvent mirrors the payload fields the handler needs.
type issueCommentEvent struct {
	Action     string `json:"action"`
	Repository struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
	Issue struct {
		Number int `json:"number"`
	} `json:"issue"`
	Comment struct {
		ID   int64  `json:"id"`
		Body string `json:"body"`
		User struct {
			Login string `json:"login"`
		} `json:"user"`
	} `json:"comment"`
}

// Handle processes one webhook delivery: signature check, event filter,
// trigger keyword match, then dispatch.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("X-Hub-Signature-256")
	if err := ValidateSignatureHeader(signature); err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	if !VerifySignature(payload, signature, h.secret) {
		http.Error(w, "signature mismatch", http.StatusUnauthorized)
		return
	}

	if eventName := r.Header.Get("X-GitHub-Event"); eventName != "issue_comment" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var ev issueCommentEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if ev.Action != "created" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if !containsTrigger(ev.Comment.Body, h.trigger) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if ev.Repository.FullName == "" || ev.Issue.Number == 0 {
		http.Error(w, "payload missing repository or issue", http.StatusBadRequest)
		return
	}

	log.Printf("[Webhook] Trigger by %s on %s#%d", ev.Comment.User.Login, ev.Repository.FullName, ev.Issue.Number)
	h.dispatch(ev.Repository.FullName, ev.Comment.ID, relay.Request{
		Repository:  ev.Repository.FullName,
		IssueNumber: ev.Issue.Number,
		Actor:       ev.Comment.User.Login,
		Instruction: ev.Comment.Body,
	})

	w.WriteHeader(http.StatusAccepted)
}

// containsTrigger checks for the trigger keyword, ignoring case.
func containsTrigger(body, trigger string) bool {
	return strings.Contains(strings.ToLower(body), strings.ToLower(trigger))
}
