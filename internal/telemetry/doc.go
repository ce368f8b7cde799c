// Package telemetry reports breadcrumbs, messages, exceptions and user
// identity to external observability tooling.
//
// Application code depends on the Sink interface. The Emitter implementation
// turns each call into an Event and fans it out to registered Handlers: the
// SentryHandler forwards events to Sentry through the request's hub, and the
// LogHandler writes them as structured logs with error text redacted.
package telemetry
