// Package redact removes likely secrets from context documents before they
// are sent to a completion provider.
//
// Detection is heuristic: regex patterns for common API key, token, and
// credential shapes. Matches are replaced with a [REDACTED] placeholder.
package redact
