// Package memory persists per-user conversation histories. The Store
// interface is defined alongside two implementations:
//
//   - FileStore writes one JSON document per sanitized user identity under a
//     base directory scoped by deployment coordinates, so parallel
//     deployments never share memory.
//   - InMemoryStore keeps histories in a process-local map for tests and
//     ephemeral sessions.
//
// Histories are ordered oldest first. Load treats a missing history as
// "first contact" and returns an empty sequence; Save fully overwrites the
// stored sequence. The design assumes at most one in-flight turn per user
// identity: the read-modify-write cycle around a turn is not coordinated
// across concurrent callers for the same user.
package memory
