package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/quodohq/quodo-go/api"
)

// uploadPart PUTs one byte range to the descriptor's pre-signed target.
// The descriptor headers are used verbatim; the client's own API credentials
// are never attached. Any non-success response is a hard failure with no
// retry. A size of -1 means the length is unknown.
func (u *Uploader) uploadPart(ctx context.Context, descriptor partDescriptor, body io.Reader, size int64, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, descriptor.url, body)
	if err != nil {
		return fmt.Errorf("create part request: %w", err)
	}
	if descriptor.authorization != "" {
		req.Header.Set("Authorization", descriptor.authorization)
	}
	if descriptor.date != "" {
		req.Header.Set("Date", descriptor.date)
	}
	req.Header.Set("Content-Type", contentType)
	if size >= 0 {
		req.ContentLength = size
	}

	resp, err := u.partClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("part upload canceled: %w", ctx.Err())
		}
		return fmt.Errorf("part upload: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			u.logger.Warnf("failed to close response body: %s", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return api.ServiceErrorFromResponse(resp)
	}
	return nil
}
