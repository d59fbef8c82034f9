package api

import (
	"fmt"

	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
)

const (
	baseURLEnvKey = "QUODO_API_BASE_URL"
	tokenEnvKey   = "QUODO_API_TOKEN"
)

// Config holds the connection settings of the API client.
type Config struct {
	BaseURL string
	Token   string
}

// ConfigFromEnv reads the client configuration from the environment.
func ConfigFromEnv(envRepo env.Repository) (Config, error) {
	baseURL := envRepo.Get(baseURLEnvKey)
	if baseURL == "" {
		return Config{}, fmt.Errorf("%s is not set", baseURLEnvKey)
	}
	token := envRepo.Get(tokenEnvKey)
	if token == "" {
		return Config{}, fmt.Errorf("%s is not set", tokenEnvKey)
	}
	return Config{BaseURL: baseURL, Token: token}, nil
}

// NewClientFromEnv creates a client configured from the environment.
func NewClientFromEnv(envRepo env.Repository, logger log.Logger) (*Client, error) {
	config, err := ConfigFromEnv(envRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to parse inputs: %w", err)
	}
	return NewClient(ClientOpts{
		BaseURL:    config.BaseURL,
		Authorizer: TokenAuthorizer{Token: config.Token},
		Logger:     logger,
	}), nil
}
