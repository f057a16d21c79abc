package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

type GoogleClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Audience      string `json:"aud"`
}

// VerifyGoogleIDToken checks an ID token against Google's tokeninfo endpoint.
// Full OAuth code exchange happens on the client; the backend only confirms
// the token and reads the profile out of it.
func VerifyGoogleIDToken(idToken string) (*GoogleClaims, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(googleTokenInfoURL + "?id_token=" + url.QueryEscape(idToken))
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo returned status %d", resp.StatusCode)
	}

	var claims GoogleClaims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, fmt.Errorf("tokeninfo parse: %w", err)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("tokeninfo: no email in token")
	}
	return &claims, nil
}
