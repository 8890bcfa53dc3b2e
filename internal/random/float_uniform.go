//go:build !compatfloat

package random

// compat selects the division-by-u32max float derivation. Build with
// -tags compatfloat to enable it.
const compat = false
