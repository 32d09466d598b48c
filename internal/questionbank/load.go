package questionbank

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// FormatVersion is the bank file format written by Export.
const FormatVersion = "v1.0.0"

// supportedMajor is the only bank file major version this build reads.
const supportedMajor = "v1"

//go:embed bank.schema.json
var bankSchemaJSON []byte

const bankSchemaURL = "schema://question-bank.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Document is the on-disk form of a question bank.
type Document struct {
	Version    string     `json:"version" yaml:"version"`
	Categories []Category `json:"categories" yaml:"categories"`
	Questions  []Question `json:"questions" yaml:"questions"`
}

// LoadFile reads a YAML or JSON question bank from disk.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return Load(data, formatFor(path))
}

// Load parses, schema-checks and validates a question bank document.
// format is "yaml" or "json".
func Load(data []byte, format string) (*Bank, error) {
	raw, err := toJSON(data, format)
	if err != nil {
		return nil, &ConfigurationError{Problems: []string{err.Error()}}
	}

	if err := validateDocument(raw); err != nil {
		return nil, &ConfigurationError{Problems: []string{err.Error()}}
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ConfigurationError{Problems: []string{fmt.Sprintf("decode document: %v", err)}}
	}

	if err := checkVersion(doc.Version); err != nil {
		return nil, &ConfigurationError{Problems: []string{err.Error()}}
	}

	return New(doc.Categories, doc.Questions)
}

// Export writes the bank as a document in the given format.
func Export(w io.Writer, b *Bank, format string) error {
	doc := Document{
		Version:    FormatVersion,
		Categories: b.Categories(),
		Questions:  b.AllQuestions(),
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown bank format: %q", format)
	}
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// toJSON normalizes the input to JSON bytes so both formats share one
// schema-validation path.
func toJSON(data []byte, format string) ([]byte, error) {
	switch format {
	case "json":
		return data, nil
	case "yaml":
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		out, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("convert yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown bank format: %q", format)
	}
}

func validateDocument(raw []byte) error {
	sch, err := bankSchema()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func bankSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(bankSchemaJSON))
		if err != nil {
			compileErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, doc); err != nil {
			compileErr = err
			return
		}
		compiled, compileErr = c.Compile(bankSchemaURL)
	})
	return compiled, compileErr
}

func checkVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid bank version %q (want semver like %s)", v, FormatVersion)
	}
	if semver.Major(v) != supportedMajor {
		return fmt.Errorf("unsupported bank version %s (this build reads %s.x)", v, supportedMajor)
	}
	return nil
}
