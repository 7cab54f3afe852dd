// Package api exposes the question catalogue over HTTP.
//
// A Server holds the store.Store interface and a logger; each handler maps
// one (HTTP verb, resource) pair to exactly one Store call and translates
// the outcome:
//
//   - success: 200/201 with a JSON body or confirmation message
//   - store.ErrNotFound: 404
//   - malformed pagination: 416
//   - anything else: 400 with the failure message
//
// Requests to unregistered routes receive 404 "Route not found" from a
// catch-all, and errors are interpreted only here, at the Store/handler
// boundary; there is no retry loop.
//
// Middleware (request-id access logging, optional per-IP rate limiting)
// wraps the mux returned by Routes.
package api
