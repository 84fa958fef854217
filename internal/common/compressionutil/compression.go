package compression

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/deploymenttheory/go-workflow-templates/internal/common/errors"
)

// Supported stream formats
const (
	FormatNone  = ""
	FormatGZIP  = "gzip"
	FormatBZIP2 = "bzip2"
	FormatXZ    = "xz"
)

var magicNumbers = map[string][]byte{
	FormatGZIP:  {0x1F, 0x8B},
	FormatBZIP2: {0x42, 0x5A, 0x68},
	FormatXZ:    {0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00},
}

var extensions = map[string]string{
	".gz":   FormatGZIP,
	".gzip": FormatGZIP,
	".bz2":  FormatBZIP2,
	".xz":   FormatXZ,
}

// FormatFromExtension returns the compression format implied by the file
// extension, or FormatNone
func FormatFromExtension(filename string) string {
	return extensions[strings.ToLower(filepath.Ext(filename))]
}

// ExtensionFor returns the file extension for a compression format
func ExtensionFor(format string) (string, error) {
	switch format {
	case FormatGZIP:
		return ".gz", nil
	case FormatBZIP2:
		return ".bz2", nil
	case FormatXZ:
		return ".xz", nil
	}
	return "", fmt.Errorf("%w: %s", errors.ErrUnsupportedCompression, format)
}

// StripExtension removes a compression extension from filename, so that
// "template.yaml.gz" becomes "template.yaml"
func StripExtension(filename string) string {
	if FormatFromExtension(filename) == FormatNone {
		return filename
	}
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// DetectFormat determines the compression format of a stream from its magic
// number, falling back to the file extension. The returned reader yields the
// complete stream including the inspected header.
func DetectFormat(r io.Reader, filename string) (string, io.Reader, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(6)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return "", nil, fmt.Errorf("%w: %v", errors.ErrFileReadError, err)
	}

	for _, format := range []string{FormatGZIP, FormatBZIP2, FormatXZ} {
		if bytes.HasPrefix(header, magicNumbers[format]) {
			return format, br, nil
		}
	}

	return FormatFromExtension(filename), br, nil
}

// NewReader wraps r in a decompressing reader for format. FormatNone returns
// r unchanged.
func NewReader(r io.Reader, format string) (io.ReadCloser, error) {
	switch format {
	case FormatNone:
		return io.NopCloser(r), nil
	case FormatGZIP:
		return newGZIPReader(r)
	case FormatBZIP2:
		return newBZIP2Reader(r)
	case FormatXZ:
		return newXZReader(r)
	}
	return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedCompression, format)
}

// NewWriter wraps w in a compressing writer for format. Closing the returned
// writer flushes the compressed stream but does not close w.
func NewWriter(w io.Writer, format string) (io.WriteCloser, error) {
	switch format {
	case FormatGZIP:
		return gzip.NewWriter(w), nil
	case FormatBZIP2:
		return newBZIP2Writer(w)
	case FormatXZ:
		return newXZWriter(w)
	}
	return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedCompression, format)
}

// Decompress reads the complete, possibly compressed, stream r
func Decompress(r io.Reader, filename string) ([]byte, error) {
	format, br, err := DetectFormat(r, filename)
	if err != nil {
		return nil, err
	}

	rc, err := NewReader(br, format)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDecompressionFailed, err)
	}
	return data, nil
}

func newGZIPReader(r io.Reader) (io.ReadCloser, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDecompressionFailed, err)
	}
	return gzipReader, nil
}
