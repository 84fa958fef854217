// Package template implements workflow templates: a workflow specification
// paired with the declarations of the parameters it expects.
//
// The workflow specification is kept as an opaque document. Templates read
// the arguments for their parameters through a scanner; substituting those
// arguments into the workflow is left to the caller.
package template

import (
	"encoding/json"
	"fmt"

	"github.com/deploymenttheory/go-workflow-templates/internal/common/cryptoutil"
	"github.com/deploymenttheory/go-workflow-templates/internal/logger"
	"github.com/deploymenttheory/go-workflow-templates/internal/parameter"
	"github.com/deploymenttheory/go-workflow-templates/internal/resolver"
	"github.com/deploymenttheory/go-workflow-templates/internal/scanner"
	"github.com/deploymenttheory/go-workflow-templates/internal/value"
)

// Labels for top-level elements of a template document
const (
	LabelWorkflow   = "workflow"
	LabelParameters = "parameters"
)

// Template is a workflow specification with its parameter declarations
type Template struct {
	workflow   map[string]interface{}
	raw        []map[string]interface{}
	parameters *parameter.Set
}

// New creates a template from a workflow specification and raw parameter
// declarations. With validate set, every declaration is checked against the
// parameter schema first. Defaults are applied in any case.
func New(workflow map[string]interface{}, parameters []map[string]interface{}, validate bool) (*Template, error) {
	if workflow == nil {
		workflow = make(map[string]interface{})
	}

	raw := make([]map[string]interface{}, 0, len(parameters))
	for _, p := range parameters {
		raw = append(raw, parameter.ApplyDefaults(p))
	}

	set, err := parameter.NewSetFromRaw(parameters, validate)
	if err != nil {
		return nil, err
	}

	return &Template{
		workflow:   workflow,
		raw:        raw,
		parameters: set,
	}, nil
}

// Workflow returns the workflow specification
func (t *Template) Workflow() map[string]interface{} {
	return t.workflow
}

// Parameters returns the parameter set
func (t *Template) Parameters() *parameter.Set {
	return t.parameters
}

// AddParameter validates a raw declaration and adds it to the template
func (t *Template) AddParameter(raw map[string]interface{}) (parameter.Declaration, error) {
	d, err := parameter.New(raw)
	if err != nil {
		return nil, err
	}

	decls := append(t.parameters.List(), d)
	set, err := parameter.NewSet(decls...)
	if err != nil {
		return nil, err
	}

	t.parameters = set
	t.raw = append(t.raw, parameter.ApplyDefaults(raw))
	return d, nil
}

// Get returns the top-level parameter with the given identifier
func (t *Template) Get(identifier string) (parameter.Declaration, error) {
	return t.parameters.Get(identifier)
}

// List returns the top-level parameters sorted by (index, identifier)
func (t *Template) List() []parameter.Declaration {
	return t.parameters.List()
}

// Read resolves the arguments for all top-level parameters, in List order
func (t *Template) Read(sc *scanner.Scanner) (*value.Map, error) {
	args, err := resolver.Read(t.List(), sc)
	if err != nil {
		logger.LogDebug("Reading template arguments failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return args, nil
}

// Document returns the template as a document with the workflow and the
// defaulted parameter declarations
func (t *Template) Document() map[string]interface{} {
	doc := map[string]interface{}{
		LabelWorkflow: t.workflow,
	}
	if len(t.raw) > 0 {
		params := make([]interface{}, len(t.raw))
		for i, p := range t.raw {
			params[i] = p
		}
		doc[LabelParameters] = params
	}
	return doc
}

// Digest fingerprints the template. The digest is computed over the
// canonical JSON encoding of Document, so layout and key order in the
// source file do not affect it.
func (t *Template) Digest(algorithm cryptoutil.HashAlgorithm) (string, error) {
	hasher, err := cryptoutil.NewHasher(algorithm)
	if err != nil {
		return "", err
	}

	data, err := t.canonical()
	if err != nil {
		return "", err
	}

	digest, err := hasher.Hash(data)
	if err != nil {
		return "", err
	}
	return cryptoutil.FormatDigest(hasher.Algorithm(), digest), nil
}

// VerifyDigest reports whether the template matches expected, a digest as
// returned by Digest. A digest without an algorithm prefix is taken to be
// BLAKE2b-256.
func (t *Template) VerifyDigest(expected string) (bool, error) {
	digest, algorithm := cryptoutil.ParseHashWithAlgorithm(expected)
	if algorithm == "" {
		algorithm = cryptoutil.BLAKE2b256
	}

	hasher, err := cryptoutil.NewHasher(algorithm)
	if err != nil {
		return false, err
	}

	data, err := t.canonical()
	if err != nil {
		return false, err
	}
	return hasher.Verify(data, digest)
}

func (t *Template) canonical() ([]byte, error) {
	data, err := json.Marshal(t.Document())
	if err != nil {
		return nil, fmt.Errorf("encoding template: %w", err)
	}
	return data, nil
}
