package resources

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/quodohq/quodo-go/api"
)

// List is a container of tasks.
type List struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListsService ...
type ListsService struct {
	client *api.Client
}

// List returns all lists visible to the caller.
func (s *ListsService) List(ctx context.Context) ([]List, error) {
	var lists []List
	if err := s.client.GetInto(ctx, "lists", nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// Get returns a single list.
func (s *ListsService) Get(ctx context.Context, listID int64) (*List, error) {
	var list List
	if err := s.client.GetInto(ctx, fmt.Sprintf("lists/%d", listID), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Create ...
func (s *ListsService) Create(ctx context.Context, name string) (*List, error) {
	var list List
	if err := s.client.SendInto(ctx, http.MethodPost, "lists", nil, api.Body{"name": name}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Update applies a partial update to a list.
func (s *ListsService) Update(ctx context.Context, listID int64, changes api.Body) (*List, error) {
	var list List
	if err := s.client.PatchInto(ctx, fmt.Sprintf("lists/%d", listID), nil, changes, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Delete removes a list.
func (s *ListsService) Delete(ctx context.Context, listID int64) error {
	return deleteResource(ctx, s.client, fmt.Sprintf("lists/%d", listID))
}
