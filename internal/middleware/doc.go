// Package middleware holds the HTTP middleware wrapped around the API router:
// request IDs, access logging and Prometheus instrumentation.
//
// Every middleware has the mux.MiddlewareFunc signature so it can be passed
// straight to Router.Use:
//
//	r.Use(middleware.RequestID, middleware.AccessLog, middleware.Prometheus)
package middleware
