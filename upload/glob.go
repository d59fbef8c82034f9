package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/quodohq/quodo-go/resources"
)

// CreateFileUploadsGlob uploads every local file matching pattern and
// attaches each one to the task. Patterns support doublestar globs
// ("logs/**/*.txt"). The first failed upload aborts the rest; already
// attached files are returned alongside the error.
func (u *Uploader) CreateFileUploadsGlob(ctx context.Context, taskID int64, pattern string) ([]*resources.File, error) {
	base, rest := doublestar.SplitPattern(pattern)
	matches, err := doublestar.Glob(os.DirFS(base), rest, doublestar.WithNoFollow())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		u.logger.Warnf("No match for pattern: %s", pattern)
		return nil, nil
	}

	files := make([]*resources.File, 0, len(matches))
	for _, match := range matches {
		path := filepath.Join(base, match)
		info, err := os.Stat(path)
		if err != nil {
			u.logger.Warnf("Skipping %s: %s", path, err)
			continue
		}
		if info.IsDir() {
			continue
		}
		file, err := u.CreateFileUpload(ctx, taskID, path)
		if err != nil {
			return files, fmt.Errorf("upload %s: %w", path, err)
		}
		files = append(files, file)
	}
	return files, nil
}
