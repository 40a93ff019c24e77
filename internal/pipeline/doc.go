// Package pipeline provides the HTTP client and wire types for the LeadFlow
// pipeline service.
//
// # Overview
//
// The pipeline service does all of the heavy lifting (map scraping, website
// summarisation, outreach drafting). This package only knows how to trigger a
// run and how to read the answer:
//
//	POST /run-leadflow-pipeline
//	{"search_query": "...", "max_links": 10}
//
//	200 OK
//	{"businesses": [{"name": "...", "website": "...", "email": "...",
//	  "summary": "...", "pain_points": "...", "outreach_email": "...",
//	  "url": "..."}]}
//
// # Error Taxonomy
//
// Send separates transport failures from HTTP outcomes:
//
//   - ErrUnreachable wraps failures to reach the service (refused, DNS, reset)
//   - a non-2xx status is returned as a normal Response; callers turn it into
//     a RequestFailedError carrying the status and raw body text
//   - DecodeLeads returns ErrMalformedResponse for bodies that are not JSON
//
// A body that is valid JSON but does not carry a businesses array decodes to
// an empty list. Zero results is not an error.
//
// # Timeouts
//
// The client applies no timeout unless one is configured; cancellation comes
// from the caller's context.
package pipeline
