// Package synth generates agronomically plausible feature values. A
// Synthesizer draws each soil and climate feature uniformly from the
// crop's catalog intervals; a Corrector applies that to every row of a
// dataset, leaving identity columns alone. Draws come from an injected
// random source, so a fixed seed reproduces a dataset exactly.
package synth
