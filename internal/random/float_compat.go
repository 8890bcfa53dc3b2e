//go:build compatfloat

package random

const compat = true
