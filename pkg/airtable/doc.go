// Package airtable is a small client for the Airtable REST API, covering the
// record operations the portal needs: paged listing with sorting and
// formulas, lookup by formula, fetch by id, create and partial update.
//
// Requests are authenticated with a personal access token sent as a bearer
// token. Rate limiting (429) and server errors are retried with a linear
// backoff; other failures surface as *APIError joined with ErrRequestFailed.
//
// Usage:
//
//	client, err := airtable.New(cfg)
//	rec, err := client.FindFirst(ctx, "Membres du club", airtable.EqualsFormula("Email", email))
//	if errors.Is(err, airtable.ErrNotFound) {
//		// create it
//	}
package airtable
