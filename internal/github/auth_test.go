package github

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testPrivateKeyPEM(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	return string(pem.EncodeToMemory(block))
}

func TestGenerateJWT(t *testing.T) {
	auth := &AppAuth{AppID: "12345", PrivateKey: testPrivateKeyPEM(t)}
	token, err := auth.GenerateJWT()
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Fatalf("not a JWT: %q", token)
	}
}

func TestGenerateJWT_BadInputs(t *testing.T) {
	if _, err := (&AppAuth{AppID: "1", PrivateKey: "not a pem"}).GenerateJWT(); err == nil {
		t.Fatalf("want error for invalid key")
	}
	if _, err := (&AppAuth{AppID: "abc", PrivateKey: testPrivateKeyPEM(t)}).GenerateJWT(); err == nil {
		t.Fatalf("want error for non-numeric app id")
	}
}

func TestGetInstallationToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/h2oai/demo/installation":
			fmt.Fprint(w, `{"id": 777}`)
		case "/app/installations/777/access_tokens":
			if r.Method != http.MethodPost {
				t.Errorf("want POST, got %s", r.Method)
			}
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"token": "ghs_test", "expires_at": "2026-01-01T00:00:00Z"}`)
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	auth := &AppAuth{AppID: "12345", PrivateKey: testPrivateKeyPEM(t), BaseURL: srv.URL}
	tok, err := auth.GetInstallationToken("h2oai/demo")
	if err != nil {
		t.Fatalf("GetInstallationToken: %v", err)
	}
	if tok.Token != "ghs_test" || tok.ExpiresAt.IsZero() {
		t.Fatalf("token: %+v", tok)
	}
}

func TestGetInstallationToken_InvalidRepo(t *testing.T) {
	auth := &AppAuth{AppID: "1", PrivateKey: testPrivateKeyPEM(t)}
	if _, err := auth.GetInstallationToken("nodash"); err == nil {
		t.Fatalf("want error for malformed repo")
	}
}
