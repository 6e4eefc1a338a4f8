// Package cli constructs the rawdrop command-line interface. It wires the Cobra
// root command to the layered configuration loader and the zap logger, then hands
// the console over to an interactive session.
package cli
