// Package ui renders clean-my-branch output for people at a terminal.
//
// ConsoleCommandEventLogger turns git lifecycle events into readable log
// lines, Printer writes the colored branch and issue report, and
// SpinnerProgress animates while issue lookups are in flight.
package ui
