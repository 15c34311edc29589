// Package pipeline orchestrates correction runs end to end: read a
// dataset, synthesize its features, write the corrected copy, and account
// for the run (structured logs, Prometheus counters, an optional NATS run
// event). Inputs can be named directly, expanded from glob patterns, or
// picked up continuously by a directory watcher.
package pipeline
