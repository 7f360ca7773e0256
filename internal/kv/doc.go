// Package kv is the key-value persistence layer of mynameis.
//
// A Medium is a string-keyed, string-valued store that may fail at any time
// (disk full, file locked, redis down). The Adapter puts typed JSON get/set
// on top of a Medium and keeps an in-memory mirror that stays authoritative
// for the rest of the session when the medium rejects a write.
//
// # Mediums
//
//	medium, err := kv.Open(ctx, kv.Options{Backend: kv.BackendFile, Path: "/path/state.json"})
//
// Supported backends:
//   - file: a single JSON object file guarded by an advisory lock
//   - sqlite: a kv table in a SQLite database
//   - redis: keys under a prefix on a redis server
//   - memory: process memory only
//
// # Typed access
//
//	adapter := kv.NewAdapter(medium, logger)
//	kv.Set(ctx, adapter, "mynameis.childName", "Emma")
//	name := kv.Get(ctx, adapter, "mynameis.childName", "")
package kv
