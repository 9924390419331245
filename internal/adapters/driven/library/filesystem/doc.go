// Package filesystem stores the deck library on the local disk and watches it
// for changes.
//
// Each deck lives in its own folder named after its file key:
//
//	~/.quickprogress/library/
//	├── biology/
//	│   └── biology.txt
//	└── history/
//	    └── history.docx
//
// Files and folders starting with "." are ignored, which keeps in-flight
// temporary writes out of listings and change events.
package filesystem
