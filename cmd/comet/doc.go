// Comet is a CLI that writes commit messages for your pending changes
// with LLM providers.
//
// It assembles the staged changes (falling back to unstaged ones) into a
// context document, asks the configured provider for a message, and
// delivers the result to stdout, the clipboard, or a commit message file
// for the prepare-commit-msg hook.
//
// Usage:
//
//	comet generate                    # print a message for the pending changes
//	comet generate --clipboard        # copy the message to the clipboard
//	comet hook install                # wire comet into git commit
//	comet config init                 # create a default config file
//	comet models list                 # list known providers and models
//
// See https://github.com/dshills/comet for full documentation.
package main
