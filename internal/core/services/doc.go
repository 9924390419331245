// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The parser and progress tracker are pure Go; storage, normalisation and
// file watching are reached only through driven ports.
package services
