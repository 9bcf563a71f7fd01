package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// GoogleProfile is the subset of the ID-token payload we consume.
type GoogleProfile struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Audience      string `json:"aud"`
}

// TokenVerifier validates an external identity token and returns the
// verified profile. Implementations are expected to talk to the
// identity provider; tests substitute a fake.
type TokenVerifier interface {
	Verify(idToken string) (*GoogleProfile, error)
}

var ErrExternalTokenRejected = errors.New("external token rejected")

// GoogleVerifier checks ID tokens against Google's tokeninfo endpoint.
type GoogleVerifier struct {
	ClientID string
	Endpoint string
	Client   *http.Client
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		ClientID: clientID,
		Endpoint: "https://oauth2.googleapis.com/tokeninfo",
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *GoogleVerifier) Verify(idToken string) (*GoogleProfile, error) {
	resp, err := v.Client.Get(v.Endpoint + "?id_token=" + url.QueryEscape(idToken))
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrExternalTokenRejected
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("tokeninfo decode failed: %w", err)
	}

	if v.ClientID != "" && profile.Audience != v.ClientID {
		return nil, ErrExternalTokenRejected
	}
	if profile.Email == "" || profile.EmailVerified != "true" {
		return nil, ErrExternalTokenRejected
	}

	return &profile, nil
}
