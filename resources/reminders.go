package resources

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/quodohq/quodo-go/api"
)

// Reminder ...
type Reminder struct {
	ID       int64     `json:"id"`
	TaskID   int64     `json:"task_id"`
	UserID   int64     `json:"user_id"`
	RemindAt time.Time `json:"remind_at"`
}

// RemindersService ...
type RemindersService struct {
	client *api.Client
}

// List returns the reminders of a task.
func (s *RemindersService) List(ctx context.Context, taskID int64) ([]Reminder, error) {
	var reminders []Reminder
	if err := s.client.GetInto(ctx, fmt.Sprintf("tasks/%d/reminders", taskID), nil, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// Create sets a reminder on a task.
func (s *RemindersService) Create(ctx context.Context, taskID int64, remindAt time.Time) (*Reminder, error) {
	var reminder Reminder
	body := api.Body{"remind_at": remindAt.UTC().Format(time.RFC3339)}
	if err := s.client.SendInto(ctx, http.MethodPost, fmt.Sprintf("tasks/%d/reminders", taskID), nil, body, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// Delete removes a reminder.
func (s *RemindersService) Delete(ctx context.Context, reminderID int64) error {
	return deleteResource(ctx, s.client, fmt.Sprintf("reminders/%d", reminderID))
}
