package resources

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quodohq/quodo-go/api"
)

func newTestServices(t *testing.T, handler http.HandlerFunc) (*Services, *recordingHandler) {
	t.Helper()
	recorder := &recordingHandler{inner: handler}
	server := httptest.NewServer(recorder)
	t.Cleanup(server.Close)
	client := api.NewClient(api.ClientOpts{
		BaseURL: server.URL,
		Logger:  log.NewLogger(),
	})
	return NewServices(client), recorder
}

type recordingHandler struct {
	inner    http.HandlerFunc
	method   string
	path     string
	rawQuery string
	body     string
}

func (h *recordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.method = r.Method
	h.path = r.URL.Path
	h.rawQuery = r.URL.RawQuery
	payload, _ := io.ReadAll(r.Body)
	h.body = string(payload)
	h.inner(w, r)
}

func jsonResponse(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestTasksService_List(t *testing.T) {
	services, recorder := newTestServices(t, jsonResponse(`[
		{"id": 1, "name": "write report", "status": "open"},
		{"id": 2, "name": "ship it", "status": "completed"}
	]`))

	tasks, err := services.Tasks.List(context.Background(), 7, TaskListOptions{
		Status:       TaskStatusOpen,
		UpdatedSince: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Limit:        50,
	})

	require.NoError(t, err)
	assert.Equal(t, "/lists/7/tasks", recorder.path)
	assert.Equal(t, "status=open&updated_since=2024-05-01T00%3A00%3A00Z&limit=50", recorder.rawQuery)
	require.Len(t, tasks, 2)
	assert.Equal(t, "write report", tasks[0].Name)
	assert.Equal(t, "completed", tasks[1].Status)
}

func TestTasksService_List_NoFilters(t *testing.T) {
	services, recorder := newTestServices(t, jsonResponse(`[]`))

	_, err := services.Tasks.List(context.Background(), 7, TaskListOptions{})

	require.NoError(t, err)
	assert.Equal(t, "", recorder.rawQuery)
}

func TestTasksService_Create(t *testing.T) {
	services, recorder := newTestServices(t, jsonResponse(`{"id": 3, "list_id": 7, "name": "new task"}`))

	task, err := services.Tasks.Create(context.Background(), 7, "new task", api.Body{"notes": "details"})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, recorder.method)
	assert.Equal(t, "/lists/7/tasks", recorder.path)
	assert.JSONEq(t, `{"name": "new task", "notes": "details"}`, recorder.body)
	assert.Equal(t, int64(3), task.ID)
}

func TestTasksService_Update(t *testing.T) {
	services, recorder := newTestServices(t, jsonResponse(`{"id": 3, "status": "completed"}`))

	task, err := services.Tasks.Update(context.Background(), 3, api.Body{"status": "completed"})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, recorder.method)
	assert.Equal(t, "/tasks/3", recorder.path)
	assert.Equal(t, "completed", task.Status)
}

func TestTasksService_Delete(t *testing.T) {
	services, recorder := newTestServices(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	err := services.Tasks.Delete(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, recorder.method)
	assert.Equal(t, "/tasks/3", recorder.path)
}

func TestTaskStatus_String(t *testing.T) {
	assert.Equal(t, "open", TaskStatusOpen.String())
	assert.Equal(t, "completed", TaskStatusCompleted.String())
	assert.Equal(t, "trashed", TaskStatusTrashed.String())
}
