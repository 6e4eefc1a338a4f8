// Package ui provides helpers for formatting human-readable console output.
//
// MessageFormatter turns session events into concise lines. ConsoleReporter writes
// them to the console and mirrors each one to the diagnostic logger so a debug log
// carries the same narrative as the terminal.
package ui
