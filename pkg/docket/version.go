// Package docket holds module-level metadata.
package docket

// Version is the docket release version.
const Version = "0.1.0"
