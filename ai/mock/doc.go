// Package mock provides test doubles for the ai package interfaces.
// The mock embedder produces deterministic vectors so similarity-dependent
// tests are repeatable without an embedding service.
package mock
