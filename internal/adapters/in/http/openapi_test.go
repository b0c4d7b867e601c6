package http_test

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"shopsecure/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGeneratedModelsMatchOpenAPI fails when openapi.yaml changed without
// running go generate for internal/generated/servers.
func TestGeneratedModelsMatchOpenAPI(t *testing.T) {
	// Given
	doc, err := openapi3.NewLoader().LoadFromFile("openapi.yaml")
	require.NoError(t, err)

	models := map[string]any{
		"DashboardStats":         servers.DashboardStats{},
		"Error":                  servers.Error{},
		"FeedbackRequest":        servers.FeedbackRequest{},
		"FeedbackResponse":       servers.FeedbackResponse{},
		"LoginRequest":           servers.LoginRequest{},
		"LoginResponse":          servers.LoginResponse{},
		"PlaceOrderForm":         servers.PlaceOrderForm{},
		"PlaceOrderRequest":      servers.PlaceOrderRequest{},
		"PlaceOrderResponse":     servers.PlaceOrderResponse{},
		"ReferenceImageForm":     servers.ReferenceImageForm{},
		"ReferenceImageResponse": servers.ReferenceImageResponse{},
		"ReturnForm":             servers.ReturnForm{},
		"ReturnResponse":         servers.ReturnResponse{},
		"SecurityLogRow":         servers.SecurityLogRow{},
		"SendPasscodeRequest":    servers.SendPasscodeRequest{},
		"SendPasscodeResponse":   servers.SendPasscodeResponse{},
		"SignUpRequest":          servers.SignUpRequest{},
		"SignUpResponse":         servers.SignUpResponse{},
		"VerifyPasscodeRequest":  servers.VerifyPasscodeRequest{},
		"VerifyPasscodeResponse": servers.VerifyPasscodeResponse{},
	}

	// Then every schema has a model
	schemaNames := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		schemaNames = append(schemaNames, name)
	}
	modelNames := make([]string, 0, len(models))
	for name := range models {
		modelNames = append(modelNames, name)
	}
	assert.ElementsMatch(t, schemaNames, modelNames)

	// And every model carries the schema's properties, optional ones as pointers
	for name, model := range models {
		schema := doc.Components.Schemas[name]
		if !assert.NotNil(t, schema, name) {
			continue
		}

		fields := jsonFields(reflect.TypeOf(model))
		properties := make([]string, 0, len(schema.Value.Properties))
		for prop := range schema.Value.Properties {
			properties = append(properties, prop)
		}
		assert.ElementsMatch(t, properties, mapKeys(fields), name)

		for prop, kind := range fields {
			required := slices.Contains(schema.Value.Required, prop)
			assert.Equal(t, !required, kind == reflect.Pointer, "%s.%s optional iff pointer", name, prop)
		}
	}
}

func jsonFields(typ reflect.Type) map[string]reflect.Kind {
	fields := make(map[string]reflect.Kind, typ.NumField())
	for i := range typ.NumField() {
		f := typ.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		fields[name] = f.Type.Kind()
	}
	return fields
}

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
