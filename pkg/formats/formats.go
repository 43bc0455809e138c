// Package formats provides readers and writers for terrain asset buffers.
package formats

// Note: TDAT (flat tile buffer) is fully implemented in tdat.go
