package api

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnvRepo struct {
	envVars map[string]string
}

func (repo fakeEnvRepo) Get(key string) string {
	return repo.envVars[key]
}

func (repo fakeEnvRepo) Set(key, value string) error {
	repo.envVars[key] = value
	return nil
}

func (repo fakeEnvRepo) Unset(key string) error {
	delete(repo.envVars, key)
	return nil
}

func (repo fakeEnvRepo) List() []string {
	envs := []string{}
	for k, v := range repo.envVars {
		envs = append(envs, fmt.Sprintf("%s=%s", k, v))
	}
	return envs
}

func TestConfigFromEnv(t *testing.T) {
	config, err := ConfigFromEnv(fakeEnvRepo{envVars: map[string]string{
		"QUODO_API_BASE_URL": "https://api.quodo.example.com/v1",
		"QUODO_API_TOKEN":    "secret",
	}})

	require.NoError(t, err)
	assert.Equal(t, "https://api.quodo.example.com/v1", config.BaseURL)
	assert.Equal(t, "secret", config.Token)
}

func TestConfigFromEnv_MissingValues(t *testing.T) {
	_, err := ConfigFromEnv(fakeEnvRepo{envVars: map[string]string{}})
	assert.Error(t, err)

	_, err = ConfigFromEnv(fakeEnvRepo{envVars: map[string]string{
		"QUODO_API_BASE_URL": "https://api.quodo.example.com/v1",
	}})
	assert.Error(t, err)
}
