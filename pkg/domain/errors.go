package domain

import "errors"

// ErrNotInitialized is returned when a conversion or calculation call is
// made before Session.Initialize has succeeded.
var ErrNotInitialized = errors.New("controller session not initialized")

// ErrInstallNotFound is returned when no controller runtime install could
// be located under the configured install root.
var ErrInstallNotFound = errors.New("controller runtime install not found")

// ErrUnsupportedVersion is returned when a configuration file reports a
// software version older than the minimum this wrapper supports.
var ErrUnsupportedVersion = errors.New("unsupported controller software version")

// ErrOperationUnresolved is returned during initialization when the vendor
// binding does not expose a required operation.
var ErrOperationUnresolved = errors.New("toolkit operation unresolved")
