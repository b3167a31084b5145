// Package sanitizer normalizes user input before it is validated or used as a
// lookup key.
package sanitizer
