// Package document exposes the public contracts for reading grid documents:
// where a document came from (Source), its raw payload (Document), and the
// Loader that fetches it. Implementations live under internal/loader so
// transport details stay hidden from consumers.
package document
