package github

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const apiBaseURL = "https://api.github.com"

// AppAuth holds GitHub App credentials for the webhook-server mode, where
// no Actions-provided token exists and tokens are minted per installation.
type AppAuth struct {
	AppID      string
	PrivateKey string

	// BaseURL overrides the API endpoint, for tests and GHE.
	BaseURL string
}

// InstallationToken is a short-lived token scoped to one installation.
type InstallationToken struct {
	Token     string
	ExpiresAt time.Time
}

// GenerateJWT creates the App-level JWT used to look up installations.
func (a *AppAuth) GenerateJWT() (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(a.PrivateKey))
	if err != nil {
		return "", fmt.Errorf("failed to parse private key: %w", err)
	}

	appID, err := strconv.ParseInt(a.AppID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid app ID %q: %w", a.AppID, err)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now.Add(-30 * time.Second)),
		ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		Issuer:    strconv.FormatInt(appID, 10),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT: %w", err)
	}
	return signed, nil
}

// GetInstallationToken mints an installation token for "owner/name".
func (a *AppAuth) GetInstallationToken(repo string) (*InstallationToken, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("invalid repository %q, want owner/name", repo)
	}

	appJWT, err := a.GenerateJWT()
	if err != nil {
		return nil, err
	}

	installationID, err := a.lookupInstallation(appJWT, owner, name)
	if err != nil {
		return nil, err
	}

	var tokenResp struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	url := fmt.Sprintf("%s/app/installations/%d/access_tokens", a.baseURL(), installationID)
	if err := a.doJSON(http.MethodPost, url, appJWT, &tokenResp); err != nil {
		return nil, fmt.Errorf("failed to create installation token: %w", err)
	}

	return &InstallationToken{Token: tokenResp.Token, ExpiresAt: tokenResp.ExpiresAt}, nil
}

func (a *AppAuth) lookupInstallation(appJWT, owner, name string) (int64, error) {
	var installation struct {
		ID int64 `json:"id"`
	}
	url := fmt.Sprintf("%s/repos/%s/%s/installation", a.baseURL(), owner, name)
	if err := a.doJSON(http.MethodGet, url, appJWT, &installation); err != nil {
		return 0, fmt.Errorf("failed to look up installation for %s/%s: %w", owner, name, err)
	}
	return installation.ID, nil
}

func (a *AppAuth) doJSON(method, url, bearer string, out interface{}) error {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("GitHub API returned %d: %s", resp.StatusCode, data)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (a *AppAuth) baseURL() string {
	if a.BaseURL != "" {
		return strings.TrimSuffix(a.BaseURL, "/")
	}
	return apiBaseURL
}
