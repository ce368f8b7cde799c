// Package mocks provides shared test doubles for the store, auth and
// telemetry interfaces.
//
// Store mocks are built on testify/mock and are driven with expectations:
//
//	users := new(mocks.UserStore)
//	users.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)
//
// The password hasher takes optional function fields, and the telemetry
// recorder captures everything sent to it so tests can assert on what a
// handler or service reported.
package mocks
