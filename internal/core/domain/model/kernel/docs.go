// Package kernel provides core domain primitives shared by the tracking model.
//
// The package includes:
//   - UUID: a value object identifying live transport connections
//   - Location: a validated WGS84 coordinate pair (lat ∈ [-90,90], lng ∈ [-180,180])
//
// Both are immutable and safe for concurrent use. Their zero values fail
// Validate, so an absent location or id is never confused with a real one.
package kernel
