// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - EnvStore: Reads and appends to the .env file
//   - TelegramGateway: Opens an MTProto connection to Telegram
//   - TelegramSession: Operations available while connected
//   - Prompter: Collects phone number, login code and password
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
