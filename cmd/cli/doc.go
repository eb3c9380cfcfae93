// Package cli constructs the chrono command-line interface. It wires the Cobra
// command hierarchy to the configuration loader and the structured logger, and
// registers the repository version commands.
package cli
