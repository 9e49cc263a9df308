// Package conversation runs chat turns: it keeps the per-conversation
// context, applies the simulated response delay and manages independent
// conversations.
package conversation

import (
	"slices"

	"github.com/liamcoop/erpassistant/intent"
)

// MaxRecent is the number of queries kept in the recent-query history
const MaxRecent = 5

// Context is the state carried between turns. It is a value: methods return
// an updated copy and never modify the receiver.
type Context struct {
	LastIntent intent.Tag `json:"lastIntent,omitempty"`
	LastQuery  string     `json:"lastQuery,omitempty"`
	Recent     []string   `json:"recentQueries"`
}

// Remember returns a context with query prepended to the recent history,
// dropping the oldest entry beyond MaxRecent
func (c Context) Remember(query string) Context {
	recent := make([]string, 0, MaxRecent)
	recent = append(recent, query)
	recent = append(recent, c.Recent[:min(len(c.Recent), MaxRecent-1)]...)
	c.Recent = recent
	return c
}

// WithTurn returns a context recording the intent and query of a completed turn
func (c Context) WithTurn(tag intent.Tag, query string) Context {
	c.LastIntent = tag
	c.LastQuery = query
	return c
}

// Clone returns a copy that shares no memory with c
func (c Context) Clone() Context {
	c.Recent = slices.Clone(c.Recent)
	return c
}
