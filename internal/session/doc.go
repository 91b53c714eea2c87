// Package session ties the engine together for one scan-to-write
// transaction.
//
// A Session owns exactly one trackconfig.Batch. Load registers scanned files,
// sizes the global slot lists, runs the per-file rules for every new file and
// then the aggregate rules. Edits, validation, planning and applying all work
// on that batch. Reset discards it and starts a new transaction with a new
// session id. Sessions are not safe for concurrent use; Lock guards against
// two processes writing at the same time.
package session
