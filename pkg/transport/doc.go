// Package transport performs authenticated HTTPS calls against a tenant's
// Chargify endpoint and classifies response statuses into the library's
// error taxonomy. It is stateless beyond the held credentials and opens a
// fresh connection per call.
package transport
