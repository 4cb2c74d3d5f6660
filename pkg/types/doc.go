// Package types defines the catalog kind registry, record and input types,
// configuration, and standard error types for the docket data-access layer.
package types
