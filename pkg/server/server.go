package server

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/arlochr/spellserve/internal/logger"
	"github.com/arlochr/spellserve/internal/utils"
	"github.com/arlochr/spellserve/pkg/config"
	"github.com/arlochr/spellserve/pkg/dictionary"
	"github.com/arlochr/spellserve/pkg/spell"
)

// Server handles the IPC for spell checking and completion. Requests
// are processed one at a time in arrival order, so no locking is
// needed around the config or the radius knob.
type Server struct {
	checker    *spell.Checker
	dict       *dictionary.Dictionary
	cfg        *config.Config
	configPath string
	dec        *msgpack.Decoder
	enc        *msgpack.Encoder
	cache      *resultCache
	requests   int
	logger     *log.Logger
}

// NewServer creates a spell server using stdin/stdout for IPC
func NewServer(checker *spell.Checker, dict *dictionary.Dictionary, cfg *config.Config, configPath string) *Server {
	return newServerWithIO(checker, dict, cfg, configPath, os.Stdin, os.Stdout)
}

func newServerWithIO(checker *spell.Checker, dict *dictionary.Dictionary, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	return &Server{
		checker:    checker,
		dict:       dict,
		cfg:        cfg,
		configPath: configPath,
		dec:        msgpack.NewDecoder(r),
		enc:        msgpack.NewEncoder(w),
		cache:      newResultCache(cfg.Server.CacheSize),
		logger:     logger.Default("ipc"),
	}
}

// Start begins listening for IPC requests
func (s *Server) Start() error {
	s.logger.Debug("Starting Server.")

	// Signal that the server is ready
	s.sendResponse(ReadyResponse{Status: "ready", WordCount: s.dict.Size()})

	// incoming requests stdin
	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if err == io.EOF {
				return nil
			}
			// A malformed value desyncs the binary stream, nothing
			// after it can be trusted
			s.logger.Errorf("Decoding request: %v", err)
			s.sendError("", "Malformed msgpack request", CodeInvalidRequest)
			return err
		}
		s.handleRequest(&req)
	}
}

// handleRequest dispatches on which request field is set
func (s *Server) handleRequest(req *Request) {
	s.requests++

	switch {
	case req.Word != "":
		s.handleCheck(req)
	case req.Prefix != "":
		s.handleComplete(req)
	case req.Action != "":
		s.handleAction(req)
	default:
		s.sendError(req.ID, "Request needs one of word, prefix or action", CodeInvalidRequest)
	}
}

// handleCheck runs one word through the engine. Input is lowercased to
// match the dictionary, the response echoes the word as sent.
func (s *Server) handleCheck(req *Request) {
	if utils.ExceedsLength(req.Word, s.cfg.Server.MaxWordLength) {
		s.sendError(req.ID, fmt.Sprintf("Word exceeds maximum length of %d characters", s.cfg.Server.MaxWordLength), CodeWordTooLong)
		s.logger.Debugf("Word too long in request %s", req.ID)
		return
	}

	word := strings.ToLower(req.Word)

	radius := req.Radius
	if radius < 1 || radius > s.checker.MaxRadius() {
		radius = s.checker.MaxRadius()
	}
	limit := s.clampLimit(req.Limit)

	start := time.Now()
	key := word + "/" + strconv.Itoa(radius)
	res, hit := s.cache.Get(key)
	if !hit {
		res = s.checker.CheckWithRadius(word, radius)
		s.cache.Put(key, res)
	}
	elapsed := time.Since(start)

	entries := make([]SuggestionEntry, 0, min(len(res.Suggestions), limit))
	for i, sug := range res.Suggestions {
		if i >= limit {
			break
		}
		entries = append(entries, SuggestionEntry{Word: sug.Word, Distance: sug.Distance})
	}

	s.sendResponse(CheckResponse{
		ID:          req.ID,
		Word:        req.Word,
		Valid:       res.Valid,
		Suggestions: entries,
		Count:       len(entries),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// handleComplete serves prefix completions from the dictionary trie
func (s *Server) handleComplete(req *Request) {
	if utils.ExceedsLength(req.Prefix, s.cfg.Server.MaxWordLength) {
		s.sendError(req.ID, fmt.Sprintf("Prefix exceeds maximum length of %d characters", s.cfg.Server.MaxWordLength), CodeWordTooLong)
		s.logger.Debugf("Prefix too long in request %s", req.ID)
		return
	}

	limit := s.clampLimit(req.Limit)

	start := time.Now()
	completions := s.dict.Complete(req.Prefix, limit)
	elapsed := time.Since(start)

	entries := make([]CompletionEntry, len(completions))
	for i, c := range completions {
		entries[i] = CompletionEntry{Word: c.Word, Rank: uint16(i + 1)}
	}

	s.sendResponse(CompleteResponse{
		ID:          req.ID,
		Suggestions: entries,
		Count:       len(entries),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// handleAction serves engine management requests
func (s *Server) handleAction(req *Request) {
	switch req.Action {
	case "get_info":
		s.sendResponse(InfoResponse{
			ID:           req.ID,
			Status:       "ok",
			WordCount:    s.dict.Size(),
			FilterBits:   s.checker.Filter().Size(),
			FilterHashes: s.checker.Filter().Hashes(),
			FPRate:       s.checker.Filter().FPRate(),
			TreeSize:     s.checker.Tree().Len(),
			TreeDepth:    s.checker.Tree().Depth(),
			MaxRadius:    s.checker.MaxRadius(),
			ConfigPath:   config.GetActiveConfigPath(s.configPath),
			CacheEntries: s.cache.Len(),
			Requests:     s.requests,
		})
	case "set_options":
		s.handleSetOptions(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), CodeInvalidAction)
	}
}

// handleSetOptions adjusts the radius cap and default suggestion limit
// at runtime, optionally writing them back to the config file.
func (s *Server) handleSetOptions(req *Request) {
	if req.MaxRadius == nil && req.SuggestLimit == nil {
		s.sendError(req.ID, "set_options carries no options", CodeInvalidRequest)
		return
	}

	if req.Persist {
		if err := s.cfg.Update(s.configPath, req.MaxRadius, req.SuggestLimit); err != nil {
			s.logger.Errorf("Persisting options: %v", err)
			s.sendError(req.ID, "Failed to persist options", CodeInternalError)
			return
		}
	} else {
		if req.MaxRadius != nil {
			s.cfg.Checker.MaxRadius = *req.MaxRadius
		}
		if req.SuggestLimit != nil {
			s.cfg.CLI.SuggestLimit = *req.SuggestLimit
		}
		s.cfg.Validate()
	}
	s.checker.SetMaxRadius(s.cfg.Checker.MaxRadius)

	s.sendResponse(OptionsResponse{
		ID:           req.ID,
		Status:       "ok",
		MaxRadius:    s.cfg.Checker.MaxRadius,
		SuggestLimit: s.cfg.CLI.SuggestLimit,
	})
}

// clampLimit fills in the default result cap and keeps client supplied
// ones inside the configured ceiling.
func (s *Server) clampLimit(limit int) int {
	if limit < 1 {
		limit = s.cfg.CLI.SuggestLimit
	}
	if limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}
	return limit
}

// sendResponse encodes one msgpack value onto the response stream
func (s *Server) sendResponse(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message, code string) {
	s.sendResponse(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
