// Package openapi embeds the API description. It backs request validation
// and the documentation served under /swagger.
package openapi

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var rawSpec []byte

var registerOnce sync.Once

// Load parses and validates the embedded document.
func Load() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse openapi document: %w", err)
	}
	if err = doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}

// JSON renders the document the way /api/openapi.json serves it.
func JSON(doc *openapi3.T) ([]byte, error) {
	return doc.MarshalJSON()
}

// Register publishes the document under swag's default instance name so the
// echo-swagger UI can read it. Only the first call has an effect.
func Register(doc *openapi3.T) error {
	rendered, err := JSON(doc)
	if err != nil {
		return err
	}

	registerOnce.Do(func() {
		swag.Register(swag.Name, &swag.Spec{
			Version:          doc.Info.Version,
			Title:            doc.Info.Title,
			Description:      doc.Info.Description,
			InfoInstanceName: swag.Name,
			SwaggerTemplate:  string(rendered),
			LeftDelim:        "{{",
			RightDelim:       "}}",
		})
	})
	return nil
}
