// fsutil/files.go
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/deploymenttheory/go-workflow-templates/internal/common/errors"
)

// FileExists checks if a file exists and is not a directory
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// OpenFile opens a file for reading, mapping the common failure modes onto
// the package errors
func OpenFile(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("%w: %s", errors.ErrPathNotAccessible, path)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: %s", errors.ErrPathNotAccessible, path)
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("%w: %s is a directory", errors.ErrFileReadError, path)
	}

	return file, nil
}

// CreateFile creates or truncates a file for writing. The parent directory
// must exist.
func CreateFile(path string) (*os.File, error) {
	if !DirExists(filepath.Dir(path)) {
		return nil, fmt.Errorf("%w: %s", errors.ErrDirNotFound, filepath.Dir(path))
	}

	file, err := os.Create(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("%w: %s", errors.ErrFileWriteError, err.Error())
	}
	return file, nil
}
