// Package normalisers provides implementations of the Normaliser interface
// for the document formats a deck can be imported from. Each normaliser
// knows how to extract text lines from a specific MIME type.
//
// Normalisers are registered with the Registry at startup.
package normalisers
