// Package resources provides thin typed accessors over the request pipeline.
// Each accessor is a one-to-one mapping to an HTTP endpoint: it marshals
// parameters, delegates to the api client and decodes the result.
package resources

import (
	"context"
	"net/http"

	"github.com/quodohq/quodo-go/api"
)

// Services groups the resource accessors around one API client.
type Services struct {
	Lists       *ListsService
	Tasks       *TasksService
	Comments    *CommentsService
	Reminders   *RemindersService
	Memberships *MembershipsService
	Users       *UsersService
	Webhooks    *WebhooksService
	Files       *FilesService
}

// NewServices ...
func NewServices(client *api.Client) *Services {
	return &Services{
		Lists:       &ListsService{client: client},
		Tasks:       &TasksService{client: client},
		Comments:    &CommentsService{client: client},
		Reminders:   &RemindersService{client: client},
		Memberships: &MembershipsService{client: client},
		Users:       &UsersService{client: client},
		Webhooks:    &WebhooksService{client: client},
		Files:       &FilesService{client: client},
	}
}

// deleteResource issues a DELETE and discards the response body.
func deleteResource(ctx context.Context, client *api.Client, path string) error {
	resp, err := client.Do(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
