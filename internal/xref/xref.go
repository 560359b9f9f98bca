// Package xref models external database references: an opaque
// identifier+source pair per element, plus the registry of known data
// sources used to interpret them.
package xref

import (
	"errors"
	"fmt"
)

// ErrInvalidXref reports a reference missing a mandatory part.
var ErrInvalidXref = errors.New("invalid xref")

// Xref is an opaque reference into an external database. The model stores it
// verbatim; interpretation is the Registry's job.
type Xref struct {
	Identifier string
	DataSource string
}

// New builds an Xref. Both parts are mandatory.
func New(identifier, dataSource string) (Xref, error) {
	if identifier == "" {
		return Xref{}, fmt.Errorf("identifier is required: %w", ErrInvalidXref)
	}
	if dataSource == "" {
		return Xref{}, fmt.Errorf("dataSource is required: %w", ErrInvalidXref)
	}
	return Xref{Identifier: identifier, DataSource: dataSource}, nil
}

// String renders the reference in compact "source:identifier" form.
func (x Xref) String() string {
	return x.DataSource + ":" + x.Identifier
}
