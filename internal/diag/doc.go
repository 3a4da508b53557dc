// Package diag defines the diagnostic model shared by every compiler stage.
//
// Diagnostic is the central record: severity, stable numeric code, message,
// and a primary source span plus optional notes. Stages emit diagnostics
// through a Reporter so that emission is decoupled from storage; the Bag
// accumulates them and answers the driver's fail-fast question (HasErrors)
// after each stage boundary. The Bag is the single result-accumulating
// context for one compilation: a fresh Bag is created per Compile call and
// never shared across concurrent compilations.
//
// Rendering lives in internal/diagfmt; this package performs no IO.
package diag
