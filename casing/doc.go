// Package casing translates JSON object keys between Go-side and wire-side
// naming conventions.
//
// A Policy pairs an encoding Strategy (applied to request bodies) with a
// decoding Strategy (applied to response bodies). The process-wide policy
// starts as snake_case in both directions and can be replaced at runtime:
//
//	casing.SetDecoding(casing.Identity())
//	defer casing.Reset()
//
// SnakeCase is direction specific. Encoding turns "lastName" into
// "last_name"; decoding turns "last_name" into "lastName".
package casing
