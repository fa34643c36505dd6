/*
Package server implements msgpack IPC for the letter-sequence search engine.

The server operates on a request response model where clients send structured
messages via stdin and receive responses through stdout. Each message carries
an ID field, an action, and the parameters of that action. Messages are
processed synchronously with timing info included in responses.

# IPC

A session starts by loading a source text, which the server strips and caches:

	{"id": "t1", "action": "set_text", "text": "...", "class": "latin"}

Search actions then run against the loaded text:

	{"id": "s1", "action": "els", "term": "cat", "skip_min": 1, "skip_max": 100}
	{"id": "s2", "action": "sequence", "term": "cat", "mode": "fibonacci"}
	{"id": "s3", "action": "chain", "term": "cat", "window": 50}

Grid actions expose the layout helpers:

	{"id": "g1", "action": "grid", "n": 17, "tolerance": 2}
	{"id": "g2", "action": "matrix", "rows": 4, "cols": 5}

Config messages adjust runtime limits without restart:

	{"id": "c1", "action": "config", "max_results": 64}

Errors never terminate the session; they come back as structured responses
with the request's ID so clients can correlate.

# Message Types

Request is the single envelope for every action. Responses are typed per
action family: SearchResponse for els/sequence, ChainResponse for chain,
GridResponse for grid/suggest_counts, MatrixResponse for matrix, and
StatusResponse for set_text/config/health. Search results reuse the engine's
result records, so the wire layout matches the documented JSON field names.
*/
package server

import (
	"github.com/rdayan/elscan/pkg/chain"
	"github.com/rdayan/elscan/pkg/els"
)

// Request - single envelope for every action
type Request struct {
	ID        string `msgpack:"id"`
	Action    string `msgpack:"action"` // "set_text", "els", "sequence", "chain", "grid", "matrix", "suggest_counts", "config", "health"
	Text      string `msgpack:"text,omitempty"`
	Class     string `msgpack:"class,omitempty"`
	Term      string `msgpack:"term,omitempty"`
	SkipMin   int    `msgpack:"skip_min,omitempty"`
	SkipMax   int    `msgpack:"skip_max,omitempty"`
	Backward  bool   `msgpack:"backward,omitempty"`
	Mode      string `msgpack:"mode,omitempty"` // "triangular", "square", "fibonacci"
	Window    int    `msgpack:"window,omitempty"`
	Starts    []int  `msgpack:"starts,omitempty"`
	Rows      int    `msgpack:"rows,omitempty"`
	Cols      int    `msgpack:"cols,omitempty"`
	N         int    `msgpack:"n,omitempty"`
	Tolerance int    `msgpack:"tolerance,omitempty"`
	Limit     int    `msgpack:"limit,omitempty"`

	// config action only
	MaxSkipSpan *int `msgpack:"max_skip_span,omitempty"`
	MaxResults  *int `msgpack:"max_results,omitempty"`
	MaxWindow   *int `msgpack:"max_window,omitempty"`
}

// StatusResponse - set_text / config / health acknowledgement
type StatusResponse struct {
	ID      string `msgpack:"id"`
	Status  string `msgpack:"status"`
	Letters int    `msgpack:"letters,omitempty"`
}

// SearchResponse - els and sequence results
type SearchResponse struct {
	ID        string       `msgpack:"id"`
	Term      string       `msgpack:"term"`
	Results   []els.Result `msgpack:"results"`
	Count     int          `msgpack:"count"`
	TimeTaken int64        `msgpack:"t"`
}

// ChainResponse - chain results with break diagnostics
type ChainResponse struct {
	ID        string         `msgpack:"id"`
	Term      string         `msgpack:"term"`
	Results   []chain.Result `msgpack:"results"`
	Broken    []chain.Break  `msgpack:"broken,omitempty"`
	Count     int            `msgpack:"count"`
	TimeTaken int64          `msgpack:"t"`
}

// GridResponse - factorization and count suggestions
type GridResponse struct {
	ID          string `msgpack:"id"`
	Rows        int    `msgpack:"rows"`
	Cols        int    `msgpack:"cols"`
	Ideal       bool   `msgpack:"ideal"`
	Suggestions []int  `msgpack:"suggestions,omitempty"`
}

// MatrixResponse - row-major grid, one string per row
type MatrixResponse struct {
	ID   string   `msgpack:"id"`
	Rows []string `msgpack:"rows"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
