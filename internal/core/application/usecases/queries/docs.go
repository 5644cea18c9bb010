// Package queries contains read operations for retrieving warehouse state.
// Implements the Query pattern for read operations in the CQRS architecture:
// handlers read straight from the database through sqlx and return read models
// shaped for the API, bypassing the aggregates.
package queries
