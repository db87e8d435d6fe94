// Package cli constructs the clean-my-branch command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives around the prune command.
package cli
