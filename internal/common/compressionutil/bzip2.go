package compression

import (
	"fmt"
	"io"

	"github.com/deploymenttheory/go-workflow-templates/internal/common/errors"
	"github.com/dsnet/compress/bzip2"
)

func newBZIP2Reader(r io.Reader) (io.ReadCloser, error) {
	bzip2Reader, err := bzip2.NewReader(r, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDecompressionFailed, err)
	}
	return bzip2Reader, nil
}

func newBZIP2Writer(w io.Writer) (io.WriteCloser, error) {
	bzip2Writer, err := bzip2.NewWriter(w, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create bzip2 writer: %w", err)
	}
	return bzip2Writer, nil
}
