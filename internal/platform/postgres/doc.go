// Package postgres implements the store interfaces on PostgreSQL.
// Itinerary waypoints and follower sets are stored as JSONB columns,
// mirroring the document shape the API exchanges with clients.
package postgres
