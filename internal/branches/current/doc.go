// Package current provides the current-branch reporting command for gbs.
package current
