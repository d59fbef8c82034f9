// Package upload implements the chunked upload protocol of the Quodo API:
// an upload session is started, the file is sent in fixed-size parts to
// pre-signed storage targets, the session is finished and the resulting
// upload is registered as a file on a task.
package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/bitrise-io/go-utils/v2/analytics"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/docker/go-units"

	"github.com/quodohq/quodo-go/api"
	"github.com/quodohq/quodo-go/resources"
)

// Uploader coordinates file uploads. Safe for concurrent use by independent
// callers; the parts of a single file are always uploaded sequentially.
type Uploader struct {
	api        *api.Client
	storage    StorageProvider
	partClient *http.Client
	tracker    analytics.Tracker
	logger     log.Logger
	now        func() time.Time
}

// NewUploader creates an uploader. storage may be nil, in which case the
// local filesystem is used; tracker may be nil to disable telemetry.
func NewUploader(apiClient *api.Client, storage StorageProvider, tracker analytics.Tracker, logger log.Logger) *Uploader {
	if storage == nil {
		storage = FileSystem{}
	}
	if logger == nil {
		logger = log.NewLogger()
	}
	return &Uploader{
		api:        apiClient,
		storage:    storage,
		partClient: defaultPartClient(),
		tracker:    tracker,
		logger:     logger,
		now:        time.Now,
	}
}

// defaultPartClient is tuned for part PUTs: no client timeout (cancellation
// is handled via context) and a modest connection pool.
func defaultPartClient() *http.Client {
	return &http.Client{
		Timeout: 0,
		Transport: &http.Transport{
			MaxIdleConns:        50,
			MaxConnsPerHost:     20,
			IdleConnTimeout:     10 * time.Second,
			TLSHandshakeTimeout: 5 * time.Second,
			Proxy:               http.ProxyFromEnvironment,
		},
	}
}

// CreateFileUpload uploads the named local resource and registers it as a
// file on the task. Files larger than ChunkSize are uploaded in sequential
// parts when the local stream is seekable; otherwise the whole stream goes
// up as a single part. A failed or canceled step aborts the remaining steps
// and propagates; the remote session is left as-is.
func (u *Uploader) CreateFileUpload(ctx context.Context, taskID int64, name string) (*resources.File, error) {
	contentType := u.storage.MimeType(name)
	if contentType == "" {
		contentType = defaultContentType
	}

	stream, err := u.storage.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer u.closeStream(stream, name)

	seeker, _ := stream.(io.ReadSeeker)
	size := int64(0)
	if seeker != nil {
		size, err = measureStream(seeker)
		if err != nil {
			return nil, fmt.Errorf("measure %s: %w", name, err)
		}
	}

	createdAt := u.now()
	session, err := u.startUpload(ctx, filepath.Base(name), size, contentType)
	if err != nil {
		return nil, err
	}

	parts := requiredParts(size)
	u.logger.Debugf("Uploading %s (%s) in %d part(s), upload id %s",
		name, units.BytesSize(float64(size)), parts, session.id)
	uploadStart := time.Now()

	if parts > 1 && seeker != nil {
		if err := u.uploadPart(ctx, session.part, NewWindow(seeker, 0, ChunkSize), partSize(size, 1), contentType); err != nil {
			return nil, err
		}
		for p := int64(2); p <= parts; p++ {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("upload canceled before part %d: %w", p, ctx.Err())
			default:
			}
			descriptor, err := u.nextPart(ctx, session.id, p)
			if err != nil {
				return nil, err
			}
			window := NewWindow(seeker, (p-1)*ChunkSize, ChunkSize)
			if err := u.uploadPart(ctx, descriptor, window, partSize(size, p), contentType); err != nil {
				return nil, err
			}
			u.logger.Debugf("Uploaded part %d/%d", p, parts)
		}
	} else {
		partBody := io.Reader(stream)
		partLength := size
		if seeker == nil {
			// Length unknown; send with chunked transfer encoding.
			partLength = -1
		}
		if err := u.uploadPart(ctx, session.part, partBody, partLength, contentType); err != nil {
			return nil, err
		}
	}

	if err := u.finishUpload(ctx, session.id); err != nil {
		return nil, err
	}

	file, err := u.registerFile(ctx, session.id, taskID, createdAt)
	if err != nil {
		return nil, err
	}

	u.trackFileUploaded(time.Since(uploadStart), size, parts)
	u.logger.Debugf("Upload of %s finished in %s", name, time.Since(uploadStart).Round(time.Millisecond))
	return file, nil
}

func (u *Uploader) startUpload(ctx context.Context, name string, size int64, contentType string) (uploadSession, error) {
	doc, err := u.api.Send(ctx, http.MethodPost, "uploads", nil, api.Body{
		"name":         name,
		"size":         size,
		"content_type": contentType,
	})
	if err != nil {
		return uploadSession{}, fmt.Errorf("start upload: %w", err)
	}
	session, err := parseSession(doc)
	if err != nil {
		return uploadSession{}, fmt.Errorf("start upload: %w", err)
	}
	return session, nil
}

func (u *Uploader) nextPart(ctx context.Context, uploadID string, p int64) (partDescriptor, error) {
	params := api.NewParams().Set("part_number", p)
	doc, err := u.api.Get(ctx, fmt.Sprintf("uploads/%s/parts", uploadID), params)
	if err != nil {
		return partDescriptor{}, fmt.Errorf("request part %d: %w", p, err)
	}
	descriptor, err := parsePartDescriptor(doc)
	if err != nil {
		return partDescriptor{}, fmt.Errorf("request part %d: %w", p, err)
	}
	return descriptor, nil
}

func (u *Uploader) finishUpload(ctx context.Context, uploadID string) error {
	_, err := u.api.Patch(ctx, fmt.Sprintf("uploads/%s", uploadID), nil, api.Body{"state": "finished"})
	if err != nil {
		return fmt.Errorf("finish upload: %w", err)
	}
	return nil
}

func (u *Uploader) registerFile(ctx context.Context, uploadID string, taskID int64, createdAt time.Time) (*resources.File, error) {
	var file resources.File
	err := u.api.SendInto(ctx, http.MethodPost, "files", nil, api.Body{
		"upload_id":        uploadID,
		"task_id":          taskID,
		"local_created_at": createdAt.UTC().Format(time.RFC3339),
	}, &file)
	if err != nil {
		return nil, fmt.Errorf("register file: %w", err)
	}
	return &file, nil
}

func measureStream(seeker io.ReadSeeker) (int64, error) {
	size, err := seeker.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return size, nil
}

func (u *Uploader) closeStream(stream io.Closer, name string) {
	if err := stream.Close(); err != nil {
		u.logger.Errorf("failed to close %s: %s", name, err)
	}
}

func (u *Uploader) trackFileUploaded(duration time.Duration, size, parts int64) {
	if u.tracker == nil {
		return
	}
	u.tracker.Enqueue("file_upload_finished", analytics.Properties{
		"upload_time_s":     duration.Truncate(time.Second).Seconds(),
		"upload_size_bytes": size,
		"part_count":        parts,
	})
}
