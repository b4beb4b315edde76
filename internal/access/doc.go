// Package access decides whether a changed file's contents may be included
// in generated commit context.
//
// A [Filter] composes two checks: an injected [IgnoreEvaluator] bound to the
// workspace root, and an exact-basename exclusion of dependency lockfiles.
// Evaluator failures are logged and allowed through — losing diff content is
// worse than occasionally including an ignorable file.
package access
