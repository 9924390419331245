// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ProgressStore: Studied-index persistence keyed by file identity
//   - DeckStore: Imported file library
//   - Normaliser: Transforms imported bytes into plain text
//   - NormaliserRegistry: Selects appropriate normaliser
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LibraryWatcher: Reports library changes. Without it, views refresh manually.
//   - Shuffler: Random permutation source. Defaults to math/rand/v2.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
