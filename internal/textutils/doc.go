// Package textutils provides small text helpers shared across commands.
//
// The helpers validate unsigned integers, normalize case, pad text, and draw
// random alphanumeric strings. Each helper is also exposed as a text-* command
// so scripts can call them as standalone processes.
package textutils
