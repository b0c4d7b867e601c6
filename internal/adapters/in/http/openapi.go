package http

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
)

//go:embed openapi.yaml
var openapiYAML []byte

// OpenAPIDoc is the validated API description served at /openapi.json.
type OpenAPIDoc struct {
	doc *openapi3.T
}

// LoadOpenAPIDoc parses and validates the embedded description.
func LoadOpenAPIDoc(ctx context.Context) (*OpenAPIDoc, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi: %w", err)
	}
	return &OpenAPIDoc{doc: doc}, nil
}

// HasOperation reports whether the description documents method on path.
func (d *OpenAPIDoc) HasOperation(method, path string) bool {
	item := d.doc.Paths.Find(path)
	return item != nil && item.GetOperation(method) != nil
}

func (d *OpenAPIDoc) ServeJSON(c echo.Context) error {
	return c.JSON(http.StatusOK, d.doc)
}
