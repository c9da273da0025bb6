package middleware

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/relay/request"
	"github.com/kbukum/relay/unit"
)

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthBearer sends a static bearer token.
	AuthBearer
	// AuthBasic sends HTTP Basic credentials.
	AuthBasic
	// AuthAPIKey sends an API key header.
	AuthAPIKey
	// AuthJWT mints a short-lived HS256 token per request.
	AuthJWT
)

// Auth attaches request authentication. Options: AuthOptions.
type Auth struct{}

// AuthOptions configures the Auth unit.
type AuthOptions struct {
	// Type is the authentication method.
	Type AuthType
	// Token is the bearer token (AuthBearer).
	Token string
	// Username and Password are the basic credentials (AuthBasic).
	Username string
	Password string
	// Key is the API key value (AuthAPIKey).
	Key string
	// Header is the API key header name (AuthAPIKey). Defaults to X-API-Key.
	Header string
	// Secret signs the per-request token (AuthJWT).
	Secret []byte
	// Issuer and Subject populate the token claims (AuthJWT).
	Issuer  string
	Subject string
	// TTL bounds token validity (AuthJWT). Defaults to one minute.
	TTL time.Duration
}

// Call implements unit.Middleware.
func (Auth) Call(ctx context.Context, env *request.Env, next unit.Next, opts any) (*request.Env, error) {
	cfg, err := authOptionsFrom(opts)
	if err != nil {
		return nil, err
	}
	if cfg.Type == AuthNone {
		return next(ctx, env)
	}

	d := env.Request.Clone()
	switch cfg.Type {
	case AuthBearer:
		d.Headers = d.Headers.Append("Authorization", "Bearer "+cfg.Token)
	case AuthBasic:
		cred := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.Password))
		d.Headers = d.Headers.Append("Authorization", "Basic "+cred)
	case AuthAPIKey:
		header := cfg.Header
		if header == "" {
			header = "X-API-Key"
		}
		d.Headers = d.Headers.Append(header, cfg.Key)
	case AuthJWT:
		token, err := mintToken(cfg)
		if err != nil {
			return nil, err
		}
		d.Headers = d.Headers.Append("Authorization", "Bearer "+token)
	default:
		return nil, fmt.Errorf("middleware: unknown auth type %d", cfg.Type)
	}
	return next(ctx, env.WithRequest(d))
}

// mintToken signs a fresh HS256 token for one request.
func mintToken(cfg AuthOptions) (string, error) {
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = time.Minute
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if cfg.Issuer != "" {
		claims["iss"] = cfg.Issuer
	}
	if cfg.Subject != "" {
		claims["sub"] = cfg.Subject
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("middleware: sign auth token: %w", err)
	}
	return token, nil
}

func authOptionsFrom(opts any) (AuthOptions, error) {
	switch v := opts.(type) {
	case nil:
		return AuthOptions{}, nil
	case AuthOptions:
		return v, nil
	case *AuthOptions:
		return *v, nil
	default:
		return AuthOptions{}, fmt.Errorf("middleware: auth options must be AuthOptions, got %T", opts)
	}
}
