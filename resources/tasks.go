package resources

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/quodohq/quodo-go/api"
)

// TaskStatus is the lifecycle state of a task. Its lower-cased name is the
// wire form used in query parameters.
type TaskStatus int

// Task statuses.
const (
	TaskStatusOpen TaskStatus = iota + 1
	TaskStatusCompleted
	TaskStatusTrashed
)

func (s TaskStatus) String() string {
	switch s {
	case TaskStatusOpen:
		return "open"
	case TaskStatusCompleted:
		return "completed"
	case TaskStatusTrashed:
		return "trashed"
	default:
		return "unknown"
	}
}

// Task ...
type Task struct {
	ID        int64     `json:"id"`
	ListID    int64     `json:"list_id"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TasksService ...
type TasksService struct {
	client *api.Client
}

// TaskListOptions filters List. Zero values are omitted from the query.
type TaskListOptions struct {
	Status       TaskStatus
	UpdatedSince time.Time
	Limit        int
}

// List returns the tasks of a list.
func (s *TasksService) List(ctx context.Context, listID int64, opts TaskListOptions) ([]Task, error) {
	params := api.NewParams()
	if opts.Status != 0 {
		params.Set("status", opts.Status)
	}
	if !opts.UpdatedSince.IsZero() {
		params.Set("updated_since", opts.UpdatedSince)
	}
	if opts.Limit > 0 {
		params.Set("limit", opts.Limit)
	}
	var tasks []Task
	if err := s.client.GetInto(ctx, fmt.Sprintf("lists/%d/tasks", listID), params, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Get returns a single task.
func (s *TasksService) Get(ctx context.Context, taskID int64) (*Task, error) {
	var task Task
	if err := s.client.GetInto(ctx, fmt.Sprintf("tasks/%d", taskID), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Create adds a task to a list. Extra holds optional attributes (notes,
// due date and so on) passed through verbatim.
func (s *TasksService) Create(ctx context.Context, listID int64, name string, extra api.Body) (*Task, error) {
	body := api.Body{"name": name}
	for key, value := range extra {
		body[key] = value
	}
	var task Task
	if err := s.client.SendInto(ctx, http.MethodPost, fmt.Sprintf("lists/%d/tasks", listID), nil, body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update applies a partial update to a task.
func (s *TasksService) Update(ctx context.Context, taskID int64, changes api.Body) (*Task, error) {
	var task Task
	if err := s.client.PatchInto(ctx, fmt.Sprintf("tasks/%d", taskID), nil, changes, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task.
func (s *TasksService) Delete(ctx context.Context, taskID int64) error {
	return deleteResource(ctx, s.client, fmt.Sprintf("tasks/%d", taskID))
}
