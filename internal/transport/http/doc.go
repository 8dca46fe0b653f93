// Package http exposes the derived QLFS tables as a read-only JSON API for
// dashboard consumption, plus health and Prometheus metrics endpoints.
package http
