// Package generate orchestrates commit-message generation: it resolves the
// target workspace, assembles the change context, prompts a completion
// provider, cleans the response, and delivers the message to a sink.
//
// Generation prefers staged changes and falls back to unstaged ones when
// nothing is staged. A repeat run over an identical context document asks
// the provider for a different message than last time.
package generate
