// Package redis provides a ProgressStore backed by Redis sets.
//
// Each deck's studied indices live in one set keyed
// quickprogress:progress:<fileKey>. Put replaces the set inside a MULTI/EXEC
// pipeline so readers never observe a half-written set.
package redis
