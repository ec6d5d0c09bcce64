// Package cases provides driver fixtures for the estimator: the four-bus
// demonstration system, ring and grid network generators, a measurement
// synthesizer that encodes a known state into exact or noisy measurements,
// and topology-error injection.
//
// Everything here is deterministic: generators emit branches in a documented
// order and noisy synthesis draws from a seeded RNG (seed 0 selects a fixed
// default stream).
package cases
