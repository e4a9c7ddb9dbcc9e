// Package verify implements the registration verification checks: document
// text matching against required identity tokens, and face-presence
// detection on the enrollment photo.
//
// Both checks fail closed: malformed input of any kind yields false, never
// an error or panic to the caller. Store and encoding failures elsewhere in
// the pipeline are NOT routed through these booleans; only genuine
// parse/decode failures collapse to false.
//
// The document check is substring presence only — no layout, signature, or
// field-position validation. That is a deliberate (weak) heuristic carried
// over from the source system, kept as-is rather than silently strengthened.
package verify
