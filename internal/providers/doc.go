// Package providers implements the Completer interface for each supported
// AI completion provider.
//
// Supported providers: Anthropic (Claude), OpenAI (GPT), Google (Gemini), and
// Ollama / LMStudio for local models.
//
// All providers share a common retry helper with exponential back-off for
// rate-limit and transient server errors. The completion call itself is
// opaque to the rest of comet: a system prompt and a user prompt go in,
// response text comes out.
//
// Use [New] to obtain a Completer by provider name and model string.
package providers
