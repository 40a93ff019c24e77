// Package app is the composition root for LeadFlow.
//
// It loads configuration, builds the diagnostic logger and pipeline client,
// and connects them to the result store, activity recorder and either the
// dashboard (Run) or a one-shot headless run (RunHeadless).
//
// # Runs
//
// Invoker owns the pipeline run lifecycle:
//
//	Begin   validate input, clear results, log "Starting pipeline for: ..."
//	Fetch   POST the request; safe off the UI loop
//	Finish  log the status, decode businesses, replace the results
//
// Only one run may be outstanding; Begin returns state.ErrRunInProgress
// otherwise. Every completion carries its run ID and Finish ignores
// completions for runs that are no longer current.
//
// Failures are logged once, as "Error: <message>", with an extra network
// hint when the pipeline could not be reached. The loading flag is cleared
// on every path.
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{}); err != nil {
//		log.Fatalf("leadflow failed: %v", err)
//	}
package app
