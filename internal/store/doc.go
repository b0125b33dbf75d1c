// Package store defines the persistence interfaces the services depend
// on, together with the sentinel errors implementations must return.
// Concrete implementations live under internal/platform.
package store
