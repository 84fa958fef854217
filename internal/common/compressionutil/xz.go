package compression

import (
	"fmt"
	"io"

	"github.com/deploymenttheory/go-workflow-templates/internal/common/errors"
	"github.com/ulikunitz/xz"
)

func newXZReader(r io.Reader) (io.ReadCloser, error) {
	xzReader, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDecompressionFailed, err)
	}
	return io.NopCloser(xzReader), nil
}

func newXZWriter(w io.Writer) (io.WriteCloser, error) {
	xzWriter, err := xz.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz writer: %w", err)
	}
	return xzWriter, nil
}
