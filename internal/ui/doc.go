// Package ui implements the LeadFlow terminal dashboard with Bubble Tea.
//
// # Layout
//
//	┌ header: logo, run phase, lead count, query, endpoint ┐
//	│ Search: query field, limit field, run button         │
//	│ Leads table              │ Details of selected lead  │
//	│ Activity log, newest first                           │
//	└ footer: key hints or the latest notice               ┘
//
// Below LayoutCompactWidth the table and detail pane share one slot and
// tab switches between them.
//
// # Event Flow
//
//  1. enter in the search form calls Invoker.Begin, which clears the
//     previous results and logs the start of the run
//  2. a tea.Cmd runs Invoker.Perform off the update loop
//  3. the resulting runFinishedMsg applies the outcome on the update loop
//  4. the model re-reads state.Store and activity.Recorder snapshots
//
// A one second tick keeps relative log timestamps fresh. Copy marks in the
// detail pane live for two seconds; each copy schedules its own expiry
// message and a repeated copy of the same field pushes the expiry out.
//
// # Preferences
//
// Theme (T) and sort order (1/2/3) are saved to prefs.toml whenever they
// change.
package ui
