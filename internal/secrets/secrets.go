// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

// Package secrets resolves the MotherDuck access token.
//
// The token comes from the environment (including a local .env file loaded by
// the config package) or, when only a secret name is configured, from Google
// Secret Manager. Resolution happens once at startup; a missing token is
// returned as config.ErrMissingCredential so the server halts before any query.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"

	"github.com/tomtom215/commutepulse/internal/config"
	"github.com/tomtom215/commutepulse/internal/logging"
)

// Token sources reported in logs.
const (
	SourceEnvironment   = "environment"
	SourceSecretManager = "secret_manager"
)

// Token is a resolved credential. String masks the value so a Token can be
// passed to loggers and fmt verbs safely.
type Token struct {
	Value  string
	Source string
}

// String returns the masked token.
func (t Token) String() string {
	return logging.MaskToken(t.Value)
}

// Store reads the payload of a named secret version.
type Store interface {
	Access(ctx context.Context, name string) ([]byte, error)
	Close() error
}

// GCPStore reads secrets from Google Secret Manager.
type GCPStore struct {
	client *secretmanager.Client
}

// NewGCPStore creates a Secret Manager client. An empty credentialsFile uses
// Application Default Credentials.
func NewGCPStore(ctx context.Context, credentialsFile string) (*GCPStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret manager client: %w", err)
	}
	return &GCPStore{client: client}, nil
}

// Access returns the payload of the secret version name
// (projects/<project>/secrets/<secret>/versions/<version>).
func (s *GCPStore) Access(ctx context.Context, name string) ([]byte, error) {
	resp, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("access secret version: %w", err)
	}
	return resp.GetPayload().GetData(), nil
}

// Close releases the client connection.
func (s *GCPStore) Close() error {
	return s.client.Close()
}

// StoreOpener creates a Store on demand. It is only called when the token is
// not already present in the environment.
type StoreOpener func(ctx context.Context, credentialsFile string) (Store, error)

// OpenGCPStore is the default StoreOpener.
func OpenGCPStore(ctx context.Context, credentialsFile string) (Store, error) {
	return NewGCPStore(ctx, credentialsFile)
}

// ResolveToken returns the MotherDuck token. An explicitly configured token
// wins; otherwise the configured secret is read through open.
func ResolveToken(ctx context.Context, cfg config.CredentialsConfig, open StoreOpener) (Token, error) {
	if token := strings.TrimSpace(cfg.MotherDuckToken); token != "" {
		return Token{Value: token, Source: SourceEnvironment}, nil
	}
	if cfg.SecretName == "" {
		return Token{}, config.ErrMissingCredential
	}
	if open == nil {
		return Token{}, errors.New("no secret store configured")
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	store, err := open(ctx, cfg.CredentialsFile)
	if err != nil {
		return Token{}, err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("Failed to close secret store")
		}
	}()

	payload, err := store.Access(ctx, cfg.SecretName)
	if err != nil {
		return Token{}, fmt.Errorf("failed to read %s: %w", cfg.SecretName, err)
	}

	token := strings.TrimSpace(string(payload))
	if token == "" {
		return Token{}, fmt.Errorf("secret %s is empty: %w", cfg.SecretName, config.ErrMissingCredential)
	}
	return Token{Value: token, Source: SourceSecretManager}, nil
}
