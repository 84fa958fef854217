package template

import (
	"encoding/json"
	"fmt"

	compression "github.com/deploymenttheory/go-workflow-templates/internal/common/compressionutil"
	"github.com/deploymenttheory/go-workflow-templates/internal/common/errors"
	"github.com/deploymenttheory/go-workflow-templates/internal/common/fsutil"
	"github.com/deploymenttheory/go-workflow-templates/internal/common/hclutil"
	"github.com/deploymenttheory/go-workflow-templates/internal/common/plistutil"
	"github.com/deploymenttheory/go-workflow-templates/internal/logger"
	"gopkg.in/yaml.v3"
)

// Encode renders the template document in the given format
func (t *Template) Encode(format string) ([]byte, error) {
	doc := t.Document()

	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrFileWriteError, err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrFileWriteError, err)
		}
		return append(data, '\n'), nil
	case FormatPlist:
		return plistutil.Encode(doc, plistutil.FormatXML)
	case FormatHCL:
		return hclutil.Encode(doc)
	}
	return nil, fmt.Errorf("%w: format '%s'", errors.ErrUnsupportedFile, format)
}

// Save writes the template to path. The format is chosen by file extension
// the same way Load chooses it, and a compression extension compresses the
// output.
func (t *Template) Save(path string) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := t.Encode(format)
	if err != nil {
		return err
	}

	file, err := fsutil.CreateFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", errors.ErrFileWriteError, cerr)
		}
	}()

	compressionFormat := compression.FormatFromExtension(path)
	if compressionFormat == compression.FormatNone {
		if _, err := file.Write(data); err != nil {
			return fmt.Errorf("%w: %v", errors.ErrFileWriteError, err)
		}
	} else {
		w, err := compression.NewWriter(file, compressionFormat)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			w.Close()
			return fmt.Errorf("%w: %v", errors.ErrFileWriteError, err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("%w: %v", errors.ErrFileWriteError, err)
		}
	}

	logger.LogInfo("Template saved", map[string]interface{}{
		"file":        path,
		"format":      format,
		"compression": compressionFormat,
	})
	return nil
}
