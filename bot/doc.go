// Package bot contains the conversation orchestrator. For each incoming
// (user, message) pair it classifies the message (command query, mention,
// plain chat), loads the windowed history from the memory store, answers
// either from the command reference or the generative model, optionally
// restyles the answer through the persona, and persists the trimmed history
// back.
//
// Execution is synchronous and request-per-call: a turn runs to completion
// with no cross-call state beyond what the memory store persists. Turns for
// the same user identity must not overlap (single-writer-per-key); turns for
// different users are independent.
package bot
