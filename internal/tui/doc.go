// Package tui implements the interactive terminal front end.
//
// The application is a single Bubble Tea model over a session.Controller:
//
//   - Idle: the topic input is focused
//   - Generating: the submit control shows a spinner and "Processing..."
//   - Success: the stats board and the tag cloud are shown; once the results
//     are ready focus moves to the tags, where x removes the selected tag,
//     c copies all tags, s saves a CSV file
//   - Failed: an error box with troubleshooting tips; edit the topic and
//     press enter to retry
//
// The generation call runs as a tea.Cmd so the event loop never blocks.
// Controller changes made off the event loop (the copy status revert) arrive
// through a subscription and trigger a re-render.
package tui
