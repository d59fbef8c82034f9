package resources

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/quodohq/quodo-go/api"
)

// Comment ...
type Comment struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentsService ...
type CommentsService struct {
	client *api.Client
}

// List returns the comments of a task.
func (s *CommentsService) List(ctx context.Context, taskID int64) ([]Comment, error) {
	var comments []Comment
	if err := s.client.GetInto(ctx, fmt.Sprintf("tasks/%d/comments", taskID), nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// Create posts a comment on a task.
func (s *CommentsService) Create(ctx context.Context, taskID int64, text string) (*Comment, error) {
	var comment Comment
	if err := s.client.SendInto(ctx, http.MethodPost, fmt.Sprintf("tasks/%d/comments", taskID), nil, api.Body{"text": text}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment.
func (s *CommentsService) Delete(ctx context.Context, commentID int64) error {
	return deleteResource(ctx, s.client, fmt.Sprintf("comments/%d", commentID))
}
