// Package luma reads the event calendar from the Luma public API.
//
// Only listing is supported. ListEvents walks every page the API returns by
// following next_cursor while has_more is set, and normalizes each entry to
// an Event.
package luma
