package upload

import (
	"fmt"
	"io"
)

// Window is a bounded, non-owning view over the byte range
// [offset, offset+length) of a shared seekable stream. The underlying stream
// is repositioned before every read, so successive non-overlapping windows
// can reuse the same stream without transferring ownership. Closing the
// underlying stream remains the caller's job.
type Window struct {
	src    io.ReadSeeker
	offset int64
	length int64
	pos    int64
}

// NewWindow creates a window over src. Reads past length yield io.EOF even
// if src has more bytes.
func NewWindow(src io.ReadSeeker, offset, length int64) *Window {
	return &Window{src: src, offset: offset, length: length}
}

// Read ...
func (w *Window) Read(p []byte) (int, error) {
	if w.pos >= w.length {
		return 0, io.EOF
	}
	if remaining := w.length - w.pos; int64(len(p)) > remaining {
		p = p[:remaining]
	}
	if _, err := w.src.Seek(w.offset+w.pos, io.SeekStart); err != nil {
		return 0, fmt.Errorf("seek to window position %d: %w", w.offset+w.pos, err)
	}
	n, err := w.src.Read(p)
	w.pos += int64(n)
	return n, err
}

// Seek operates in the window's local coordinate space.
func (w *Window) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = w.pos + offset
	case io.SeekEnd:
		abs = w.length + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("negative window position: %d", abs)
	}
	w.pos = abs
	return abs, nil
}

// Size returns the window length.
func (w *Window) Size() int64 {
	return w.length
}
