// Package output renders generation results in the supported formats.
package output
