// Package style loads repo-local commit-message style rules.
//
// Rules live in a .comet.yaml file at the workspace root (or a configured
// path) and are rendered into the generation prompt: commit convention,
// subject length limit, allowed scopes, and free-form extra directives.
package style
