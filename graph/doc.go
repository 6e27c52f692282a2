// Package graph runs Gremlin queries and maps the returned vertices into
// entities.
package graph
