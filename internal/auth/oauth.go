// Package auth holds the Strava OAuth endpoints and a one-shot
// authorization-code flow used to mint the initial token when no refresh
// token is provided via the environment.
package auth

import (
	"golang.org/x/oauth2"
)

// Strava OAuth endpoints.
const (
	AuthURL  = "https://www.strava.com/oauth/authorize"
	TokenURL = "https://www.strava.com/oauth/token"
)

// CallbackPort is where the one-shot authorization flow listens.
const CallbackPort = 8089

// Scopes needed to read the athlete's profile and full activity history.
// Strava wants them comma-separated inside a single scope value.
var Scopes = []string{"read,activity:read_all"}

// NewOAuthConfig builds the oauth2 config for the given application
// credentials. redirectURL may be empty when only the refresh grant is used.
func NewOAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  AuthURL,
			TokenURL: TokenURL,
		},
		RedirectURL: redirectURL,
		Scopes:      Scopes,
	}
}
