// Package normalize converts user-supplied event and booking input into the
// one canonical stored representation: trimmed strings, deduplicated lists,
// lowercased emails, UTC calendar dates, 24-hour clock values and URL-safe
// slugs.
//
// Every function is a pure mapping from raw input to normalized output (or
// an error) and is idempotent, so the record managers can run them
// immediately before persistence without consulting the store.
package normalize
