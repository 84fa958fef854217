package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	compression "github.com/deploymenttheory/go-workflow-templates/internal/common/compressionutil"
	"github.com/deploymenttheory/go-workflow-templates/internal/common/cryptoutil"
	"github.com/deploymenttheory/go-workflow-templates/internal/common/errors"
	"github.com/deploymenttheory/go-workflow-templates/internal/common/fsutil"
	"github.com/deploymenttheory/go-workflow-templates/internal/common/hclutil"
	"github.com/deploymenttheory/go-workflow-templates/internal/common/plistutil"
	"github.com/deploymenttheory/go-workflow-templates/internal/logger"
	"gopkg.in/yaml.v3"
)

// Document formats
const (
	FormatYAML  = "yaml"
	FormatJSON  = "json"
	FormatPlist = "plist"
	FormatHCL   = "hcl"
)

// FormatFromPath determines the document format from the file extension,
// ignoring a trailing compression extension
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(fsutil.GetExtension(compression.StripExtension(path)))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".plist":
		return FormatPlist, nil
	case ".hcl":
		return FormatHCL, nil
	}
	return "", fmt.Errorf("%w: %s", errors.ErrUnsupportedFile, path)
}

// Load reads a template file. The format is chosen by file extension; files
// may be compressed with gzip, bzip2 or xz.
func Load(path string, validate bool) (*Template, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	file, err := fsutil.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := compression.Decompress(file, path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}

	t, err := Parse(data, format, path, validate)
	if err != nil {
		return nil, fmt.Errorf("loading template %s: %w", path, err)
	}

	fields := map[string]interface{}{
		"file":       path,
		"format":     format,
		"parameters": t.parameters.Len(),
	}
	if digest, err := t.Digest(cryptoutil.BLAKE2b256); err == nil {
		fields["digest"] = digest
	}
	logger.LogInfo("Template loaded", fields)

	return t, nil
}

// Parse decodes a template document in the given format. The filename is
// only used in error messages.
func Parse(data []byte, format, filename string, validate bool) (*Template, error) {
	doc, err := decode(data, format, filename)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc, validate)
}

func decode(data []byte, format, filename string) (map[string]interface{}, error) {
	var doc map[string]interface{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrUnsupportedFile, err)
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		if err := decoder.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrUnsupportedFile, err)
		}
	case FormatPlist:
		var plistFormat plistutil.Format
		var err error
		if doc, plistFormat, err = plistutil.Decode(data); err != nil {
			return nil, err
		}
		logger.LogDebug("Decoded property list", map[string]interface{}{
			"file":     filename,
			"encoding": plistutil.FormatToString(plistFormat),
		})
	case FormatHCL:
		var err error
		if doc, err = hclutil.Decode(data, filename); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: format '%s'", errors.ErrUnsupportedFile, format)
	}

	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", errors.ErrInvalidTemplate)
	}
	return doc, nil
}

// FromDocument creates a template from a decoded document. The document
// must contain the workflow element and may contain the parameters element;
// anything else is rejected.
func FromDocument(doc map[string]interface{}, validate bool) (*Template, error) {
	if _, ok := doc[LabelWorkflow]; !ok {
		return nil, fmt.Errorf("%w: missing element '%s'", errors.ErrInvalidTemplate, LabelWorkflow)
	}
	for key := range doc {
		if key != LabelWorkflow && key != LabelParameters {
			return nil, fmt.Errorf("%w: invalid element '%s'", errors.ErrInvalidTemplate, key)
		}
	}

	workflow, ok := toStringMap(doc[LabelWorkflow])
	if !ok {
		return nil, fmt.Errorf("%w: element '%s' must be an object", errors.ErrInvalidTemplate, LabelWorkflow)
	}

	var parameters []map[string]interface{}
	if raw, ok := doc[LabelParameters]; ok && raw != nil {
		items, ok := raw.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: element '%s' must be a list", errors.ErrInvalidTemplate, LabelParameters)
		}
		for i, item := range items {
			p, ok := toStringMap(item)
			if !ok {
				return nil, fmt.Errorf("%w: parameter %d must be an object", errors.ErrInvalidTemplate, i+1)
			}
			parameters = append(parameters, p)
		}
	}

	return New(workflow, parameters, validate)
}

// toStringMap accepts the object representations produced by the decoders
func toStringMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		converted := make(map[string]interface{}, len(m))
		for key, val := range m {
			converted[fmt.Sprint(key)] = val
		}
		return converted, true
	case nil:
		return map[string]interface{}{}, true
	}
	return nil, false
}
