package ports

import (
	"context"

	"github.com/aretw0/mcdgen/pkg/domain"
)

// Document is an opaque handle to the vendor's native representation of a
// parsed stage document. Only the Toolkit that produced it can consume it.
type Document any

// Toolkit is the narrow surface of the vendor configuration engine that
// this module consumes. Implementations own all parameter calculation,
// unit conversion, and machine-model validation; the session only
// sequences these calls and moves files around them.
//
// Every conversion or calculation returns the vendor's warning list next
// to its primary result. Warnings are never errors.
type Toolkit interface {
	// Parse converts a JSON stage document into the vendor's native form.
	Parse(ctx context.Context, document []byte) (Document, error)

	// ConvertToMCD builds a configuration object from a parsed document.
	ConvertToMCD(ctx context.Context, doc Document) (Definition, domain.Warnings, error)

	// ConvertToJSON renders a configuration object as JSON text.
	ConvertToJSON(ctx context.Context, def Definition) ([]byte, domain.Warnings, error)

	// Calculate runs the vendor's parameter calculation, returning a new
	// calculated configuration object.
	Calculate(ctx context.Context, def Definition) (Definition, domain.Warnings, error)

	// ReadDefinition loads an existing configuration file from disk.
	ReadDefinition(ctx context.Context, path string) (Definition, error)
}

// Definition is an opaque handle to a fully-formed machine configuration
// owned by the vendor engine. The caller owns the handle once returned.
type Definition interface {
	// SoftwareVersion reports the controller software version embedded in
	// the configuration.
	SoftwareVersion() string

	// WriteTo persists the configuration to the given path.
	WriteTo(path string) error

	// ConfigurationFiles returns the embedded configuration entries keyed
	// by name (e.g. "Parameters").
	ConfigurationFiles() (map[string][]byte, error)
}
