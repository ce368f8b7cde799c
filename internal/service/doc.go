// Package service contains the application use cases: registering and
// authenticating users, and creating, listing and toggling their tasks.
//
// Services depend on the store interfaces from internal/store and never on a
// specific backend. They report significant changes to a telemetry.Sink and
// return the sentinel errors in errors.go for expected failures, so the HTTP
// layer can decide what to show the user with errors.Is.
//
// Identity is always explicit: operations that act on behalf of a user take
// the requester's ID as a parameter.
package service
