package resources

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/quodohq/quodo-go/api"
)

// Membership links a user to a list.
type Membership struct {
	ID        int64     `json:"id"`
	ListID    int64     `json:"list_id"`
	UserID    int64     `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// MembershipsService ...
type MembershipsService struct {
	client *api.Client
}

// List returns the memberships of a list.
func (s *MembershipsService) List(ctx context.Context, listID int64) ([]Membership, error) {
	var memberships []Membership
	if err := s.client.GetInto(ctx, fmt.Sprintf("lists/%d/memberships", listID), nil, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

// Create adds a user to a list.
func (s *MembershipsService) Create(ctx context.Context, listID, userID int64) (*Membership, error) {
	var membership Membership
	if err := s.client.SendInto(ctx, http.MethodPost, fmt.Sprintf("lists/%d/memberships", listID), nil, api.Body{"user_id": userID}, &membership); err != nil {
		return nil, err
	}
	return &membership, nil
}

// Delete removes a user from a list.
func (s *MembershipsService) Delete(ctx context.Context, membershipID int64) error {
	return deleteResource(ctx, s.client, fmt.Sprintf("memberships/%d", membershipID))
}
