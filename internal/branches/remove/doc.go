// Package remove provides the interactive local branch deletion command for gbs.
package remove
