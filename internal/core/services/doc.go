// Package services implements the driving port interfaces.
// Services contain the core setup logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no network or file access of their own.
package services
