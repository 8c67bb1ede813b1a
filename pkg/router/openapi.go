package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// OpenAPI renders the OpenAPI 3.0 document for every registered route
func (dr *DocRouter) OpenAPI() map[string]any {
	dr.docMu.Lock()
	defer dr.docMu.Unlock()

	spec := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       dr.title,
			"description": dr.description,
			"version":     dr.version,
		},
		"paths": dr.generatePaths(),
	}

	if len(dr.servers) > 0 {
		servers := make([]any, 0, len(dr.servers))
		for _, s := range dr.servers {
			servers = append(servers, map[string]any{"url": s.URL, "description": s.Description})
		}
		spec["servers"] = servers
	}

	if len(dr.tags) > 0 {
		tags := make([]any, 0, len(dr.tags))
		for _, t := range dr.tags {
			tags = append(tags, map[string]any{"name": t.Name, "description": t.Description})
		}
		spec["tags"] = tags
	}

	// generated last: paths register the schemas they reference
	spec["components"] = map[string]any{
		"schemas": dr.schemas.all(),
	}

	return spec
}

// OpenAPIJSON renders the document as indented JSON
func (dr *DocRouter) OpenAPIJSON() ([]byte, error) {
	data, err := json.MarshalIndent(dr.OpenAPI(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}
	return data, nil
}

// OpenAPIHandler serves the document
func (dr *DocRouter) OpenAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := dr.OpenAPIJSON()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}
}

// extractPathParams gets path parameter names from a URL pattern
func extractPathParams(path string) []string {
	var params []string
	for _, part := range strings.Split(path, "/") {
		if len(part) > 2 && part[0] == '{' && part[len(part)-1] == '}' {
			// {name...} wildcards document as plain name
			params = append(params, strings.TrimSuffix(part[1:len(part)-1], "..."))
		}
	}
	return params
}

// pathParameters merges the names found in the path with the documented params
func pathParameters(route RouteInfo) []any {
	var parameters []any
	for _, name := range extractPathParams(route.Path) {
		typ := "string"
		description := fmt.Sprintf("%s parameter", name)

		idx := slices.IndexFunc(route.Params, func(p Param) bool { return p.Name == name })
		if idx >= 0 {
			if route.Params[idx].Type != "" {
				typ = route.Params[idx].Type
			}
			if route.Params[idx].Description != "" {
				description = route.Params[idx].Description
			}
		}

		parameters = append(parameters, map[string]any{
			"name":        name,
			"in":          "path",
			"required":    true,
			"schema":      map[string]any{"type": typ},
			"description": description,
		})
	}
	return parameters
}

func operationID(method, path string) string {
	replacer := strings.NewReplacer("/", "_", "{", "", "}", "", ".", "_")
	return strings.Trim(method+replacer.Replace(path), "_")
}

// generatePaths creates the paths section of the document
func (dr *DocRouter) generatePaths() map[string]any {
	paths := map[string]any{}

	for _, route := range dr.routes {
		if _, exists := paths[route.Path]; !exists {
			paths[route.Path] = map[string]any{}
		}
		pathItem := paths[route.Path].(map[string]any)
		method := strings.ToLower(route.Method)

		operation := map[string]any{
			"summary":     route.Name,
			"description": route.Description,
			"operationId": operationID(method, route.Path),
			"responses":   dr.generateResponses(route),
		}

		if len(route.Tags) > 0 {
			operation["tags"] = route.Tags
		}

		if params := pathParameters(route); len(params) > 0 {
			operation["parameters"] = params
		}

		if route.RequestType != nil && (method == "post" || method == "put" || method == "patch") {
			operation["requestBody"] = map[string]any{
				"description": fmt.Sprintf("request body for %s", route.Name),
				"required":    true,
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": dr.schemas.ref(route.RequestType),
					},
				},
			}
		}

		pathItem[method] = operation
	}

	return paths
}

// generateResponses creates response documentation, defaulting to a bare
// 200 when the route documents no success response
func (dr *DocRouter) generateResponses(route RouteInfo) map[string]any {
	responses := map[string]any{}
	hasSuccess := false

	for statusCode, rr := range route.Responses {
		if strings.HasPrefix(statusCode, "2") {
			hasSuccess = true
		}

		response := map[string]any{
			"description": rr.Description,
		}

		content := map[string]any{}
		if rr.Schema != nil {
			content["schema"] = dr.schemas.ref(rr.Schema)
		}
		if len(rr.Examples) > 0 {
			examples := map[string]any{}
			for i, example := range rr.Examples {
				examples[fmt.Sprintf("example%d", i+1)] = map[string]any{
					"value": example.Value,
				}
			}
			content["examples"] = examples
		}
		if len(content) > 0 {
			response["content"] = map[string]any{
				"application/json": content,
			}
		}

		responses[statusCode] = response
	}

	if !hasSuccess {
		responses["200"] = map[string]any{
			"description": "successful operation",
		}
	}

	return responses
}
