package calendar

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"real-estate-crm/internal/config"
)

// calendarScope grants read/write access to the agent's calendars
const calendarScope = "https://www.googleapis.com/auth/calendar"

// oauthConfig builds the OAuth2 config for the Google Calendar flow.
// endpoint defaults to Google's; tests point it at a fake provider.
func oauthConfig(cfg config.GoogleConfig, endpoint oauth2.Endpoint) *oauth2.Config {
	if endpoint.AuthURL == "" {
		endpoint = google.Endpoint
	}
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       []string{calendarScope},
		Endpoint:     endpoint,
	}
}
