package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/hirepath/hirepath-server/internal/config"
	"github.com/hirepath/hirepath-server/internal/logger"
	"github.com/hirepath/hirepath-server/internal/store"
	"github.com/hirepath/hirepath-server/internal/utils"
	"github.com/hirepath/hirepath-server/models"
)

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, Google sign-in, and
// JWT token lifecycle using a UserRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// googleProvider redeems OAuth codes and fetches Google profiles.
	googleProvider GoogleAuthProvider

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and Google provider, populated with security parameters
// from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, googleProvider GoogleAuthProvider, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		googleProvider: googleProvider,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// normalizeEmail lowercases and trims an email so lookups are
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new password-based account.
//
// It validates the name, email format, and password length, hashes the
// password with bcrypt, and persists the account with default KPI settings.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if a field fails validation.
//   - A wrapped storage error if the repository call fails (e.g. email
//     already taken, see store.ErrEmailAlreadyExists).
func (a *authService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)

	if strings.TrimSpace(name) == "" {
		return models.User{}, fmt.Errorf("%w: name is required", ErrInvalidDataProvided)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return models.User{}, fmt.Errorf("%w: a valid email is required", ErrInvalidDataProvided)
	}
	if len(password) < MinPasswordLength {
		return models.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidDataProvided, MinPasswordLength)
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		log.Err(err).Str("email", email).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("%w: password could not be hashed", ErrInvalidDataProvided)
	}

	user := models.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: passwordHash,
		KPISettings:  models.DefaultKPISettings(),
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing password-based account.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - ErrAccountConflict if the account can only sign in through Google.
//   - ErrInvalidCredentials if the email is unknown or the password does
//     not match. The two cases produce the same error so login attempts
//     cannot probe which emails are registered.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)

	if email == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: email and password are required", ErrInvalidDataProvided)
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, ErrInvalidCredentials
	}

	if foundUser.PasswordHash == "" {
		// the account was created through Google and never set a password
		log.Warn().Int64("id", foundUser.UserID).Msg("password login attempted on google-only account")
		return models.User{}, fmt.Errorf("%w: this account signs in with google", ErrAccountConflict)
	}

	if !utils.CheckPasswordHash(password, foundUser.PasswordHash) {
		log.Warn().Int64("id", foundUser.UserID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// GoogleAuthURL returns the Google consent page URL carrying state.
func (a *authService) GoogleAuthURL(state string) string {
	return a.googleProvider.AuthCodeURL(state)
}

// GoogleLogin completes the Google OAuth flow for an authorization code.
//
// The provider redeems the code and fetches the Google profile; the account
// is then resolved in one of three ways:
//   - no account with the profile's email exists: a new Google-backed
//     account is created with default KPI settings;
//   - a password-only account with that email exists: the sign-in fails
//     with ErrAccountConflict, the owner must use password login;
//   - a Google-backed account exists: its name, picture, and provider id
//     are refreshed from the fetched profile before it is returned.
func (a *authService) GoogleLogin(ctx context.Context, code string) (models.User, error) {
	log := logger.FromContext(ctx)

	if code == "" {
		return models.User{}, fmt.Errorf("%w: authorization code is required", ErrInvalidDataProvided)
	}

	profile, err := a.googleProvider.FetchProfile(ctx, code)
	if err != nil {
		log.Err(err).Msg("google profile fetch failed")
		return models.User{}, err
	}

	profile.Email = normalizeEmail(profile.Email)
	if profile.ID == "" || profile.Email == "" {
		return models.User{}, fmt.Errorf("%w: incomplete profile", ErrGoogleProfileFetchFailed)
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, profile.Email)
	switch {
	case err == nil && foundUser.GoogleID == "" && !foundUser.IsGoogleUser:
		log.Warn().Int64("id", foundUser.UserID).Msg("google sign-in attempted on password account")
		return models.User{}, fmt.Errorf("%w: this email is already registered, sign in with your password", ErrAccountConflict)

	case err == nil:
		if profile.Name == "" {
			profile.Name = foundUser.Name
		}

		refreshedUser, linkErr := a.userRepository.LinkGoogleAccount(ctx, foundUser.UserID, profile)
		if linkErr != nil {
			log.Err(linkErr).Int64("id", foundUser.UserID).Msg("refreshing google account failed")
			return models.User{}, fmt.Errorf("refreshing google account failed: %w", linkErr)
		}
		return refreshedUser, nil

	case errors.Is(err, store.ErrUserNotFound):
		name := profile.Name
		if name == "" {
			name = profile.Email
		}

		createdUser, createErr := a.userRepository.CreateUser(ctx, models.User{
			Email:        profile.Email,
			Name:         name,
			GoogleID:     profile.ID,
			Picture:      profile.Picture,
			IsGoogleUser: true,
			KPISettings:  models.DefaultKPISettings(),
		})
		if createErr != nil {
			log.Err(createErr).Str("email", profile.Email).Msg("google account creation failed")
			return models.User{}, fmt.Errorf("google account creation failed: %w", createErr)
		}
		return createdUser, nil

	default:
		log.Err(err).Str("email", profile.Email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}
}

// GetUser returns the account with the given id.
func (a *authService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
//
// Returns the decoded token model on success or ErrTokenIsExpiredOrInvalid on
// any validation failure.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
