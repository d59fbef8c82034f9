package resources

import (
	"context"
	"fmt"

	"github.com/quodohq/quodo-go/api"
)

// User ...
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
}

// UsersService ...
type UsersService struct {
	client *api.Client
}

// List returns all users visible to the caller.
func (s *UsersService) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.client.GetInto(ctx, "users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Get returns a single user.
func (s *UsersService) Get(ctx context.Context, userID int64) (*User, error) {
	var user User
	if err := s.client.GetInto(ctx, fmt.Sprintf("users/%d", userID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me returns the authenticated user.
func (s *UsersService) Me(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.GetInto(ctx, "users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
