// Package llm provides the chat-completion client used as the pipeline's
// extraction engine.
//
// The client targets an OpenAI-compatible endpoint (DeepSeek by default)
// and exposes exactly what the pipeline needs: a single JSON-producing
// completion call with a fixed timeout, a cheap health check, and a
// decoder that tolerates fenced code blocks around the returned object.
// Requests are never retried; failure handling is the pipeline's job.
package llm
