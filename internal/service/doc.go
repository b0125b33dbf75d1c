// Package service implements the domain modules: business operations
// that take normalized input and return plain results or typed domain
// errors. Nothing in this package knows about HTTP.
package service
