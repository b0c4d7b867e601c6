// Package servers holds the HTTP models generated from the embedded OpenAPI
// document of the inbound HTTP adapter.
package servers

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 --config=cfg.yaml ../../adapters/in/http/openapi.yaml
