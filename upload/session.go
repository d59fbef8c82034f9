package upload

import (
	"fmt"

	"github.com/quodohq/quodo-go/api"
)

// ChunkSize is the fixed part size of the upload protocol: 5 MiB. It is not
// negotiated with the server.
const ChunkSize = 5 * 1024 * 1024

// partDescriptor is the single-use, pre-signed target for exactly one part.
// The authorization and date values are used verbatim as request headers;
// they are distinct from the client's own API credentials.
type partDescriptor struct {
	url           string
	authorization string
	date          string
}

// uploadSession is the server-side tracking record of one in-progress
// upload. It is reconstructed from server responses per invocation, never
// cached.
type uploadSession struct {
	id   string
	part partDescriptor
}

// parseSession reads the fields of interest out of a start-upload response.
func parseSession(doc *api.Document) (uploadSession, error) {
	id := doc.Get("id").Text()
	if id == "" {
		return uploadSession{}, fmt.Errorf("upload session response has no id")
	}
	part, err := parsePartDescriptor(doc)
	if err != nil {
		return uploadSession{}, err
	}
	return uploadSession{id: id, part: part}, nil
}

// parsePartDescriptor reads a part descriptor from a session or next-part
// response. The descriptor may be nested under "part" or sit at the top
// level, depending on the call.
func parsePartDescriptor(doc *api.Document) (partDescriptor, error) {
	if nested := doc.Get("part"); nested.Exists() {
		doc = nested
	}
	targetURL, _ := doc.Get("url").String()
	if targetURL == "" {
		return partDescriptor{}, fmt.Errorf("part descriptor has no url")
	}
	authorization, _ := doc.Get("authorization").String()
	date, _ := doc.Get("date").String()
	return partDescriptor{url: targetURL, authorization: authorization, date: date}, nil
}

// requiredParts keeps the literal truncating arithmetic of the protocol:
// (size-1)/ChunkSize + 1. Size 0 maps to a single, possibly empty part.
func requiredParts(size int64) int64 {
	return (size-1)/ChunkSize + 1
}

// partSize returns the byte count of part number p (1-based) of a file of
// the given total size.
func partSize(size, p int64) int64 {
	remaining := size - (p-1)*ChunkSize
	if remaining > ChunkSize {
		return ChunkSize
	}
	return remaining
}
