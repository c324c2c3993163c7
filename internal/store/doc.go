// Package store provides the SQLite-backed load journal for raddict.
//
// The journal is an append-only audit log of dictionary loads:
//   - loads: one row per top-level LoadFile or LoadBuffer call, with its
//     outcome and the record counts of the handle afterwards
//   - load_files: every file the load opened, outer file and includes
//
// The journal records what happened; it is not a dictionary serialization
// format and cannot be used to rebuild a handle.
//
// # Ordering
//
// Every row carries a seq assigned by SQLite AUTOINCREMENT. Queries order by
// seq, never by timestamps, so history output is deterministic.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
