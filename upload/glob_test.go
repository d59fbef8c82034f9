package upload

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quodohq/quodo-go/api"
)

func TestCreateFileUploadsGlob(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("beta"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.log"), []byte("gamma"), 0600))

	service := newFakeQuodoService(t)
	apiClient := api.NewClient(api.ClientOpts{
		BaseURL:    service.server.URL,
		Authorizer: api.TokenAuthorizer{Token: "api-token"},
		Logger:     log.NewLogger(),
	})
	uploader := NewUploader(apiClient, nil, nil, log.NewLogger())

	files, err := uploader.CreateFileUploadsGlob(context.Background(), 42, filepath.Join(dir, "*.txt"))

	require.NoError(t, err)
	assert.Len(t, files, 2)
	// Two complete upload flows, single part each.
	assert.Equal(t, []string{
		"start", "put 1", "finish", "register",
		"start", "put 1", "finish", "register",
	}, service.recordedCalls())
}

func TestCreateFileUploadsGlob_SkipsUnreadableMatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0600))
	// A dangling symlink matches the pattern but cannot be stat'd.
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "b.txt")))

	service := newFakeQuodoService(t)
	apiClient := api.NewClient(api.ClientOpts{
		BaseURL: service.server.URL,
		Logger:  log.NewLogger(),
	})
	uploader := NewUploader(apiClient, nil, nil, log.NewLogger())

	files, err := uploader.CreateFileUploadsGlob(context.Background(), 42, filepath.Join(dir, "*.txt"))

	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, []string{"start", "put 1", "finish", "register"}, service.recordedCalls())
}

func TestCreateFileUploadsGlob_NoMatch(t *testing.T) {
	service := newFakeQuodoService(t)
	apiClient := api.NewClient(api.ClientOpts{
		BaseURL: service.server.URL,
		Logger:  log.NewLogger(),
	})
	uploader := NewUploader(apiClient, nil, nil, log.NewLogger())

	files, err := uploader.CreateFileUploadsGlob(context.Background(), 42, filepath.Join(t.TempDir(), "*.txt"))

	require.NoError(t, err)
	assert.Empty(t, files)
	assert.Empty(t, service.recordedCalls())
}
