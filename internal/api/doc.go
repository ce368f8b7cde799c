// Package api handles incoming HTTP requests for the server-rendered pages.
// Handlers bind and validate form input, call the services, report failures
// to telemetry and answer with a rendered page or a redirect carrying a
// flash message. Expected failures never escape a handler; the only
// deliberate panic is the fault demonstration endpoint.
package api
