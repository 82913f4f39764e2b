// Package domain defines the core entities for tgsetup.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Credentials: The Telegram api_id / api_hash pair
//   - Setup: Values loaded from the env file
//   - Account: The authenticated user
//   - Report: The outcome of a setup or check run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
