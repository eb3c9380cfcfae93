// Package ui renders svn and git lifecycle events as short console messages.
//
// Structured diagnostics keep flowing through the regular zap logger; the
// console logger is only attached when the console log format is active.
package ui
