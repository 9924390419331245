// Package domain defines the core study entities for quickprogress.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Question: An immutable question/answer pair
//   - QuestionSet: The ordered questions parsed from one source file
//   - StudiedSet: Indices into a QuestionSet that were marked studied
//   - Deck: A source file imported into the library
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
