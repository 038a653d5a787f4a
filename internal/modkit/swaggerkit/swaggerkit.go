// Package swaggerkit serves the shop's OpenAPI document and the swagger ui in front of it
package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	phttp "eshoppers/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openapiYAML []byte

// BasePath is where the documented routes are mounted
const BasePath = "/api/v1"

var (
	docOnce sync.Once
	docJSON []byte
	docErr  error
)

// Doc is the OpenAPI document as JSON, the Error response and the default 400 and 500 answers are filled in
func Doc() ([]byte, error) {
	docOnce.Do(func() { docJSON, docErr = render(openapiYAML) })
	return docJSON, docErr
}

func render(src []byte) ([]byte, error) {
	var spec map[string]any
	if err := yaml.Unmarshal(src, &spec); err != nil {
		return nil, fmt.Errorf("openapi: %w", err)
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": BasePath}}
	}
	comps := child(spec, "components")
	child(comps, "schemas")["ErrorResponse"] = errorSchema
	child(comps, "responses")["Error"] = errorResponse("Error", 404, "Not Found", "not found", "")

	defaults := map[string]any{
		"400": errorResponse("Bad Request", 400, "Bad Request", "must not be blank", "name"),
		"500": errorResponse("Internal Server Error", 500, "Internal Server Error", "internal error", ""),
	}
	for _, p := range child(spec, "paths") {
		ops, _ := p.(map[string]any)
		for method, op := range ops {
			o, ok := op.(map[string]any)
			if !ok || method == "parameters" {
				continue
			}
			resps := child(o, "responses")
			for code, r := range defaults {
				if _, ok := resps[code]; !ok {
					resps[code] = r
				}
			}
		}
	}
	return json.Marshal(spec)
}

// child returns m[key] as a map, creating it when missing
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

var errorSchema = map[string]any{
	"type":     "object",
	"required": []any{"status_code", "status", "code", "error"},
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer"},
		"error":       map[string]any{"type": "string"},
		"field":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
}

func errorResponse(desc string, status int, text, msg, field string) map[string]any {
	ex := map[string]any{"status_code": status, "status": text, "error": msg, "request_id": "host/abc-000001"}
	if field != "" {
		ex["field"] = field
	}
	return map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": ex,
			},
		},
	}
}

// Mount serves the ui under /api/docs/ and the document at /api/docs/doc.json when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := Doc()
		if err != nil {
			phttp.WriteError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(doc)
	})
	r.Handle("/api/docs/*", httpSwagger.Handler(httpSwagger.URL("/api/docs/doc.json")))
}
