// Package api provides the HTTP handlers of the trip planner. Handlers
// are thin controller adapters: they bind and validate the request,
// call a domain service, and hand the outcome to the response
// normalizer in the shared subpackage. Status codes are never chosen
// here.
package api
