// Package types defines the entity types, association kinds, configuration,
// and standard errors for the otkeep storage core.
package types
