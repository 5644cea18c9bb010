// Package api holds the OpenAPI document of the warehouse HTTP API.
package api

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var document []byte

var (
	loadOnce sync.Once
	loaded   *openapi3.T
	loadErr  error
)

// Load parses and validates the embedded document. The result is cached and
// must not be modified by callers.
func Load() (*openapi3.T, error) {
	loadOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(document)
		if err != nil {
			loadErr = fmt.Errorf("parse openapi document: %w", err)
			return
		}
		if err = doc.Validate(loader.Context); err != nil {
			loadErr = fmt.Errorf("validate openapi document: %w", err)
			return
		}
		loaded = doc
	})
	return loaded, loadErr
}

// SwaggerDoc serves the document as JSON to Swagger UI. It implements
// swag.Swagger.
type SwaggerDoc struct{}

// ReadDoc returns the JSON form of the document.
func (SwaggerDoc) ReadDoc() string {
	doc, err := Load()
	if err != nil {
		return "{}"
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return "{}"
	}
	return string(out)
}
