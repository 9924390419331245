// Package html provides a Normaliser implementation for HTML documents.
// It tokenizes the markup, drops scripts and styles, and turns block
// elements into line breaks so question lines survive.
package html
