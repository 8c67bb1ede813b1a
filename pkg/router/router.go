// package router provides a router wrapper that captures documentation data
package router

import (
	"net/http"
	"sync"
)

// Server is an entry of the OpenAPI servers list
type Server struct {
	URL         string
	Description string
}

// Tag groups operations in the OpenAPI document
type Tag struct {
	Name        string
	Description string
}

// Param documents a path parameter
type Param struct {
	Name        string // must match the {name} segment in the path
	Type        string // JSON schema type, "string" when empty
	Description string
}

// Example represents an example response for documentation
type Example struct {
	ContentType string // Content type of the example (e.g., "application/json")
	Value       string // Example value as string
}

// RouteResponse represents a documented response for a specific HTTP status code
type RouteResponse struct {
	StatusCode  string    // HTTP status code (e.g., "200", "400")
	Description string    // Description of the response
	Schema      any       // Response schema/type (optional)
	Examples    []Example // Example responses (optional)
}

// RouteInfo stores documentation for a route
type RouteInfo struct {
	Method      string
	Path        string
	Name        string
	Description string
	Handler     http.Handler
	RequestType any
	Params      []Param
	Responses   map[string]RouteResponse
	Tags        []string
}

// RouteConfig is a builder for route configuration
type RouteConfig struct {
	router      *DocRouter
	method      string
	path        string
	handler     http.HandlerFunc
	name        string
	description string
	requestType any
	params      []Param
	responses   map[string]RouteResponse
	tags        []string
}

// DocRouter wraps http.ServeMux to add documentation capabilities
type DocRouter struct {
	mux        *http.ServeMux
	middleware []func(http.Handler) http.Handler
	handler    http.Handler

	title       string
	description string
	version     string
	servers     []Server
	tags        []Tag
	routes      []RouteInfo

	// guards schemas, which OpenAPI fills while rendering
	docMu   sync.Mutex
	schemas *schemaRegistry
}

// NewDocRouter creates a new documented router
func NewDocRouter(title, description, version string) *DocRouter {
	mux := http.NewServeMux()
	return &DocRouter{
		mux:         mux,
		handler:     mux,
		title:       title,
		description: description,
		version:     version,
		routes:      []RouteInfo{},
		schemas:     newSchemaRegistry(),
	}
}

// WithServer adds a server entry to the generated document
func (dr *DocRouter) WithServer(url, description string) *DocRouter {
	dr.servers = append(dr.servers, Server{URL: url, Description: description})
	return dr
}

// WithTag declares a tag and its description
func (dr *DocRouter) WithTag(name, description string) *DocRouter {
	dr.tags = append(dr.tags, Tag{Name: name, Description: description})
	return dr
}

// Use wraps every route, registered before or after the call, with the
// given middleware. Middleware added first runs first.
func (dr *DocRouter) Use(middleware ...func(http.Handler) http.Handler) {
	dr.middleware = append(dr.middleware, middleware...)

	var handler http.Handler = dr.mux
	for i := len(dr.middleware) - 1; i >= 0; i-- {
		handler = dr.middleware[i](handler)
	}
	dr.handler = handler
}

// Route starts a route configuration chain
func (dr *DocRouter) Route(method, path string, handler http.HandlerFunc) *RouteConfig {
	return &RouteConfig{
		router:    dr,
		method:    method,
		path:      path,
		handler:   handler,
		responses: make(map[string]RouteResponse),
	}
}

// WithName adds a name to the route
func (rc *RouteConfig) WithName(name string) *RouteConfig {
	rc.name = name
	return rc
}

// WithDescription adds a description to the route
func (rc *RouteConfig) WithDescription(description string) *RouteConfig {
	rc.description = description
	return rc
}

// WithParam documents a path parameter
func (rc *RouteConfig) WithParam(name, typ, description string) *RouteConfig {
	rc.params = append(rc.params, Param{Name: name, Type: typ, Description: description})
	return rc
}

// WithRequest adds a request body type to the route
func (rc *RouteConfig) WithRequest(requestType any) *RouteConfig {
	rc.requestType = requestType
	return rc
}

// WithResponse documents a success response. schema may be nil for
// responses without a body.
func (rc *RouteConfig) WithResponse(statusCode, description string, schema any) *RouteConfig {
	rc.responses[statusCode] = RouteResponse{
		StatusCode:  statusCode,
		Description: description,
		Schema:      schema,
	}
	return rc
}

// WithErrorResponse adds an error response to the route
func (rc *RouteConfig) WithErrorResponse(statusCode, description string, schema any, examples ...Example) *RouteConfig {
	rc.responses[statusCode] = RouteResponse{
		StatusCode:  statusCode,
		Description: description,
		Schema:      schema,
		Examples:    examples,
	}
	return rc
}

// WithTags adds tags to the route
func (rc *RouteConfig) WithTags(tags ...string) *RouteConfig {
	rc.tags = tags
	return rc
}

// Register finalizes the route configuration and registers it with the router
func (rc *RouteConfig) Register() {
	// Go 1.22 pattern with method
	pattern := rc.method + " " + rc.path
	rc.router.mux.Handle(pattern, rc.handler)

	rc.router.routes = append(rc.router.routes, RouteInfo{
		Method:      rc.method,
		Path:        rc.path,
		Name:        rc.name,
		Description: rc.description,
		Handler:     rc.handler,
		RequestType: rc.requestType,
		Params:      rc.params,
		Responses:   rc.responses,
		Tags:        rc.tags,
	})
}

// Routes returns all documented routes in registration order
func (dr *DocRouter) Routes() []RouteInfo {
	return dr.routes
}

// ServeHTTP makes DocRouter implement the http.Handler interface
func (dr *DocRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	dr.handler.ServeHTTP(w, r)
}
