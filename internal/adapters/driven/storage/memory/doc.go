// Package memory provides in-process implementations of the storage ports.
// They back the "memory" storage backend and the service tests.
// Nothing here survives a restart.
package memory
