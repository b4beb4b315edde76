// Package session persists the previous generation result per workspace
// root so a repeat invocation on an identical diff can be asked to produce a
// different message.
//
// Entries are JSON files keyed by the SHA-256 of the workspace root, stored
// under the platform cache directory. Writes are last-write-wins: two
// concurrent generations racing on the same root is an accepted limitation,
// not guarded by locking.
package session
