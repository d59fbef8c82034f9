package api

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// ServiceError is a structured failure response from the API or from a part
// storage target. Payload carries the nested "error" object when the failure
// body was JSON; otherwise only the status code and reason phrase are known.
type ServiceError struct {
	StatusCode int
	Reason     string
	Payload    *Document
}

func (e *ServiceError) Error() string {
	if e.Payload.Exists() {
		encoded, err := e.Payload.MarshalJSON()
		if err == nil {
			return fmt.Sprintf("HTTP %d: %s", e.StatusCode, encoded)
		}
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Reason)
}

// ServiceErrorFromResponse reads and classifies a non-success response.
// A JSON body yields the nested "error" payload; anything else falls back to
// the status code and reason phrase. The response body is consumed but not
// closed.
func ServiceErrorFromResponse(resp *http.Response) *ServiceError {
	serviceErr := &ServiceError{
		StatusCode: resp.StatusCode,
		Reason:     reasonPhrase(resp),
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil || len(body) == 0 {
		return serviceErr
	}
	if !isJSONMediaType(resp.Header.Get("Content-Type")) {
		return serviceErr
	}
	doc, err := ParseDocument(bytes.NewReader(body))
	if err != nil {
		return serviceErr
	}
	if nested := doc.Get("error"); nested.Exists() {
		serviceErr.Payload = nested
	} else {
		serviceErr.Payload = doc
	}
	return serviceErr
}

func reasonPhrase(resp *http.Response) string {
	return strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" ")
}

func isJSONMediaType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
