// Package storage provides the persistence backends the key store writes
// its per-scope account documents to. A backend is a flat string-to-string
// store; the key store decides what goes into the values.
package storage

// Store persists one opaque document per scope key. Get returns ok=false
// when the scope has never been written. Implementations must make Put
// atomic: after a failed Put the previous document is still intact.
type Store interface {
	Get(scope string) (doc string, ok bool, err error)
	Put(scope string, doc string) error
	Delete(scope string) error
	Close() error
}
