// Package messages builds the message panel: the five most recent messages and notifications of
// a user, reduced to short summaries with relative timestamps.
package messages
