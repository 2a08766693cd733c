// Package report prints findings and manages baselines.
//
// # Formats
//
//	text  file:line:col: message (checker), colored when the output is a terminal
//	json  {"findings": [...], "count": n}
//
// # Baselines
//
// A baseline records the fingerprints of known findings so that only new
// ones are reported. Fingerprints ignore line numbers (see
// [finding.Fingerprint]); each fingerprint stores how many findings carried
// it, and filtering suppresses at most that many.
package report
