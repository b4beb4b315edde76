// Package cli implements the comet command-line interface.
package cli
