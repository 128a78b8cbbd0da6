/*
Package server implements msgpack IPC for spell checking services.

The server package provides a minimal interface for word checking and prefix completion using msgpack serialization over stdin/stdout.

The protocol uses binary msgpack encoding and supports check requests, completion requests, engine management ops, and config updates.
Messages are processed synchronously with timing info included in responses.

# IPC

The server operates on a request response model where clients send structured messages via stdin and receive responses through stdout.
Each message contains an ID field, and which other field is set picks the operation.

Check requests carry the word under test:

	{"id": "req_001", "w": "teh"}

The server responds with the verdict and ranked corrections, nearest first:

	{"id": "req_001", "w": "teh", "v": false, "s": [{"w": "the", "d": 1}, {"w": "ten", "d": 1}], "c": 2, "t": 145}

Completion requests carry a prefix instead:

	{"id": "req_002", "p": "ame", "l": 24}
	{"id": "req_002", "s": [{"w": "amenity", "r": 1}, {"w": "america", "r": 2}], "c": 2, "t": 98}

Engine management enables runtime inspection and tuning:

	{"id": "eng_001", "action": "get_info"}
	{"id": "eng_002", "action": "set_options", "max_radius": 3, "persist": true}

Failed requests come back as an error message with a stable code string,
so clients can branch without parsing prose.

# Message Types

Request covers every incoming message. A non-empty Word makes it a check,
a non-empty Prefix makes it a completion, and Action selects a management op.
Exactly one of the three should be set.

CheckResponse and CompleteResponse carry result arrays plus timing data in microseconds.
InfoResponse reports word counts, filter geometry, tree shape, cache usage and the active config path.

msgpack encoding has ~30 to 50% smaller message sizes compared to JSON.
binary format enables faster parsing and generation, less errors and reducing latency in most cases.
*/
package server

// Request - one incoming message, field presence picks the operation
type Request struct {
	ID     string `msgpack:"id"`
	Word   string `msgpack:"w,omitempty"`
	Prefix string `msgpack:"p,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
	Radius int    `msgpack:"r,omitempty"`
	Action string `msgpack:"action,omitempty"` // "get_info", "set_options"

	// set_options payload
	MaxRadius    *int `msgpack:"max_radius,omitempty"`
	SuggestLimit *int `msgpack:"suggest_limit,omitempty"`
	Persist      bool `msgpack:"persist,omitempty"`
}

// SuggestionEntry - one ranked correction
type SuggestionEntry struct {
	Word     string `msgpack:"w"`
	Distance int    `msgpack:"d"`
}

// CheckResponse - spell check verdict with corrections
type CheckResponse struct {
	ID          string            `msgpack:"id"`
	Word        string            `msgpack:"w"`
	Valid       bool              `msgpack:"v"`
	Suggestions []SuggestionEntry `msgpack:"s"`
	Count       int               `msgpack:"c"`
	TimeTaken   int64             `msgpack:"t"`
}

// CompletionEntry - one ranked completion
type CompletionEntry struct {
	Word string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
}

// CompleteResponse - prefix completion response
type CompleteResponse struct {
	ID          string            `msgpack:"id"`
	Suggestions []CompletionEntry `msgpack:"s"`
	Count       int               `msgpack:"c"`
	TimeTaken   int64             `msgpack:"t"`
}

// InfoResponse - engine stats for "get_info"
type InfoResponse struct {
	ID           string  `msgpack:"id"`
	Status       string  `msgpack:"status"`
	WordCount    int     `msgpack:"word_count"`
	FilterBits   uint64  `msgpack:"filter_bits"`
	FilterHashes int     `msgpack:"filter_hashes"`
	FPRate       float64 `msgpack:"fp_rate"`
	TreeSize     int     `msgpack:"tree_size"`
	TreeDepth    int     `msgpack:"tree_depth"`
	MaxRadius    int     `msgpack:"max_radius"`
	ConfigPath   string  `msgpack:"config_path"`
	CacheEntries int     `msgpack:"cache_entries"`
	Requests     int     `msgpack:"requests"`
}

// OptionsResponse - ack for "set_options" with the values now in effect
type OptionsResponse struct {
	ID           string `msgpack:"id"`
	Status       string `msgpack:"status"`
	MaxRadius    int    `msgpack:"max_radius"`
	SuggestLimit int    `msgpack:"suggest_limit"`
}

// ReadyResponse - emitted once on startup before the request loop
type ReadyResponse struct {
	Status    string `msgpack:"status"`
	WordCount int    `msgpack:"word_count"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  string `msgpack:"c"`
}

// Stable error code strings clients can branch on
const (
	CodeInvalidRequest = "invalid_request"
	CodeWordTooLong    = "word_too_long"
	CodeInvalidAction  = "invalid_action"
	CodeInternalError  = "internal_error"
)
