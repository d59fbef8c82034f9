// Package telemetry builds the analytics tracker consumed by the upload
// coordinator. Telemetry is opt-in: callers that pass no tracker get none.
package telemetry

import (
	"fmt"

	"github.com/bitrise-io/go-utils/v2/analytics"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
)

const (
	workspaceIDEnvKey = "QUODO_WORKSPACE_ID"
	workspaceID       = "workspace_id"
)

// TrackerFactory ...
type TrackerFactory func(...analytics.Properties) analytics.Tracker

// NewUploadTracker returns a tracker stamped with the caller's workspace id.
func NewUploadTracker(repository env.Repository, trackerFactory TrackerFactory) (analytics.Tracker, error) {
	id := repository.Get(workspaceIDEnvKey)
	if id == "" {
		return nil, fmt.Errorf("no workspace ID found")
	}
	return trackerFactory(analytics.Properties{workspaceID: id}), nil
}

// NewDefaultUploadTracker ...
func NewDefaultUploadTracker(repository env.Repository, logger log.Logger) (analytics.Tracker, error) {
	return NewUploadTracker(repository, func(properties ...analytics.Properties) analytics.Tracker {
		return analytics.NewDefaultTracker(logger, properties...)
	})
}
