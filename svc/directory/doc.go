// Package directory serves the dashboard listings: club members, experts,
// partners, the community circle and upcoming events.
//
// Listings are read in full from Airtable (events from Luma) and paginated in
// memory with Paginate. When a source is not configured or fails, the
// service answers with built-in fallback data and marks the result with
// Fallback so callers can tell.
package directory
