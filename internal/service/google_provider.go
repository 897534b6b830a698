package service

import (
	"context"
	"fmt"

	"github.com/hirepath/hirepath-server/internal/config"
	"github.com/hirepath/hirepath-server/internal/logger"
	"github.com/hirepath/hirepath-server/internal/utils"
	"github.com/hirepath/hirepath-server/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// googleUserinfoURL is the endpoint that resolves an access token into the
// signed-in user's profile.
const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// googleProvider implements [GoogleAuthProvider] on top of the official
// oauth2 package for the code exchange and a resty client for the userinfo
// call.
type googleProvider struct {
	oauth  *oauth2.Config
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewGoogleProvider constructs a [GoogleAuthProvider] from the configured
// OAuth client credentials.
func NewGoogleProvider(cfg config.Google, logger *logger.Logger) GoogleAuthProvider {
	return &googleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		client: utils.NewHTTPClient(),
		logger: logger,
	}
}

// AuthCodeURL returns the Google consent page URL carrying state.
func (g *googleProvider) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state)
}

// FetchProfile redeems the authorization code for an access token and
// resolves it into the user's Google profile.
func (g *googleProvider) FetchProfile(ctx context.Context, code string) (models.GoogleProfile, error) {
	log := logger.FromContext(ctx)

	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		log.Err(err).Str("func", "googleProvider.FetchProfile").Msg("authorization code exchange failed")
		return models.GoogleProfile{}, fmt.Errorf("%w: %w", ErrGoogleExchangeFailed, err)
	}

	var profile models.GoogleProfile
	resp, err := g.client.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetResult(&profile).
		Get(googleUserinfoURL)
	if err != nil {
		log.Err(err).Str("func", "googleProvider.FetchProfile").Msg("userinfo request failed")
		return models.GoogleProfile{}, fmt.Errorf("%w: %w", ErrGoogleProfileFetchFailed, err)
	}

	if resp.IsError() {
		log.Error().
			Str("func", "googleProvider.FetchProfile").
			Int("status", resp.StatusCode()).
			Msg("userinfo request returned an error status")
		return models.GoogleProfile{}, fmt.Errorf("%w: status %d", ErrGoogleProfileFetchFailed, resp.StatusCode())
	}

	return profile, nil
}
