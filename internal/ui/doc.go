// Package ui provides terminal rendering components for the keywordmaster CLI.
//
// This package uses Lipgloss to render polished terminal output for one-shot
// commands such as "keywordmaster generate". The interactive TUI in
// internal/tui reuses the same renderers, so a tag cloud looks identical in
// both places.
//
// # Components
//
//   - Header: command banner showing the topic, provider and model
//   - Badge / TagCloud: category-coloured tag chips, wrapped to the terminal width
//   - StatsBoard: category breakdown bars plus quick insights
//   - Result: success and failure boxes with troubleshooting tips
//   - TagTable: tabular tag listing (tablewriter)
//   - Printer: writes any of the above to an io.Writer
//
// # Logging Integration
//
// Logging is controlled via the KEYWORDMASTER_LOG_LEVEL environment variable.
// When unset, zap logging is silent so the curated UI output stays clean.
package ui
