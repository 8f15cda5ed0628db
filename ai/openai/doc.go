// Package openai implements the ai.Embedder interface against
// OpenAI-compatible embedding APIs (Ollama, LocalAI, vLLM, OpenAI itself)
// via langchaingo.
package openai
