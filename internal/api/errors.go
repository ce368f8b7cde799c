package api

import (
	"errors"
	"fmt"
)

// FaultKind classifies the failures GET /error can raise.
type FaultKind string

// Fault kinds selectable with the type query parameter.
const (
	FaultDivision FaultKind = "division"
	FaultKey      FaultKind = "key"
	FaultType     FaultKind = "type"
	FaultGeneric  FaultKind = "generic"
)

// Fault is the value GET /error panics with.
type Fault struct {
	Kind FaultKind
	Err  error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s fault: %v", f.Kind, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// NewFault builds the fault for a type query value. Unknown or empty values
// follow the same rules as the endpoint: empty means division, anything
// unrecognised is generic.
func NewFault(kind string) *Fault {
	switch FaultKind(kind) {
	case "", FaultDivision:
		return &Fault{Kind: FaultDivision, Err: errors.New("integer divide by zero")}
	case FaultKey:
		return &Fault{Kind: FaultKey, Err: fmt.Errorf("key %q not found", "nonexistent")}
	case FaultType:
		return &Fault{Kind: FaultType, Err: errors.New("length of nil value")}
	default:
		return &Fault{Kind: FaultGeneric, Err: errors.New("generic error")}
	}
}
