package http

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPIDocument []byte

var (
	defineFormatsOnce   sync.Once
	registerSwaggerOnce sync.Once
)

// LoadOpenAPI parses and validates the embedded API description.
func LoadOpenAPI() (*openapi3.T, error) {
	defineFormatsOnce.Do(func() {
		openapi3.DefineStringFormatValidator("uuid", openapi3.NewCallbackValidator(func(value string) error {
			_, err := uuid.Parse(value)
			return err
		}))
	})

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}

	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	return doc, nil
}

// RegisterSwagger publishes doc to the swagger UI. Only the first call has an effect.
func RegisterSwagger(doc *openapi3.T) error {
	rendered, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("render openapi document: %w", err)
	}

	registerSwaggerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc(rendered))
	})
	return nil
}

type swaggerDoc []byte

func (d swaggerDoc) ReadDoc() string {
	return string(d)
}
