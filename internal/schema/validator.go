// Package schema validates generation-service output against the JSON
// schema contract it was requested with.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Validator checks JSON documents against schemas, caching compiled schemas
// keyed by their marshaled form.
type Validator struct {
	cache sync.Map // map[string]*gojsonschema.Schema
}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate reports an error when doc does not conform to schemaDef. The
// schema may be a map, struct or JSON-marshalable value.
func (v *Validator) Validate(schemaDef any, doc string) error {
	compiled, err := v.compile(schemaDef)
	if err != nil {
		return fmt.Errorf("invalid schema definition: %w", err)
	}

	result, err := compiled.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return fmt.Errorf("validation failed to run: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := result.Errors()
	parts := make([]string, 0, 3)
	for i, desc := range errs {
		if i == 3 {
			parts = append(parts, fmt.Sprintf("and %d more", len(errs)-3))
			break
		}
		parts = append(parts, desc.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(parts, "; "))
}

func (v *Validator) compile(schemaDef any) (*gojsonschema.Schema, error) {
	raw, err := json.Marshal(schemaDef)
	if err != nil {
		return nil, err
	}
	key := string(raw)
	if cached, ok := v.cache.Load(key); ok {
		return cached.(*gojsonschema.Schema), nil
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, err
	}
	v.cache.Store(key, compiled)
	return compiled, nil
}
