// Package registry provides a generic thread-safe registry for values
// indexed by key.
//
// The event bus uses a Registry to map event identifiers to their
// subscription buckets, creating buckets lazily with GetOrCreate:
//
//	buckets := registry.New[uuid.UUID, *bucket]()
//	b := buckets.GetOrCreate(eventID, newBucket)
//
// Registry only guards the key-to-value mapping. Values themselves are
// shared between callers; mutating a stored value concurrently needs
// whatever discipline the value's owner imposes.
package registry
