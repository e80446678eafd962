package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedMajor is the catalog format major version this build reads.
const SupportedMajor = "v1"

const bundleSchemaURL = "schema://careerfit-catalog.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// LoadFile reads a YAML or JSON catalog document, checks it against the
// catalog schema and version, and returns the decoded bundle. The bundle
// is not semantically validated; NewStatic does that.
func LoadFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return Parse(data, "json")
	default:
		return Parse(data, "yaml")
	}
}

// Parse decodes a catalog document in the given format ("yaml" or "json").
func Parse(data []byte, format string) (*Bundle, error) {
	var doc any
	switch format {
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse catalog json: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse catalog yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown catalog format %q", format)
	}

	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var b Bundle
	switch format {
	case "json":
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
	}

	if err := checkVersion(b.Version); err != nil {
		return nil, err
	}
	return &b, nil
}

// Open loads a catalog file and builds a validated Static catalog from it.
func Open(path string) (*Static, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewStatic(b)
}

func checkVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("catalog version %q is not a valid semantic version", v)
	}
	if major := semver.Major(v); major != SupportedMajor {
		return fmt.Errorf("catalog version %s is not supported (need %s.x.x)", v, SupportedMajor)
	}
	return nil
}

// validateDocument checks a decoded document against bundleSchema.
func validateDocument(doc any) error {
	// YAML decodes integers as int; round-trip through JSON so the
	// validator sees plain JSON values.
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalise catalog document: %w", err)
	}
	var normalised any
	if err := json.Unmarshal(b, &normalised); err != nil {
		return fmt.Errorf("normalise catalog document: %w", err)
	}

	schema, err := catalogSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(normalised); err != nil {
		return fmt.Errorf("catalog schema validation failed: %w", err)
	}
	return nil
}

func catalogSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		defBytes, err := json.Marshal(bundleSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal catalog schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(bundleSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(bundleSchemaURL)
	})
	return compiledSchema, compileErr
}
