package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rdayan/elscan/pkg/els"
	"github.com/rdayan/elscan/pkg/engine"
	"github.com/rdayan/elscan/pkg/skipseq"
	"github.com/rdayan/elscan/pkg/textprep"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for letter-sequence searches
type Server struct {
	engine     *engine.Engine
	configPath string
	decoder    *msgpack.Decoder
	encoder    *msgpack.Encoder
	prep       *textprep.PreparedText
	requests   int
}

// NewServer creates a search server using stdin/stdout for IPC
func NewServer(eng *engine.Engine, configPath string) *Server {
	return &Server{
		engine:     eng,
		configPath: configPath,
		decoder:    msgpack.NewDecoder(os.Stdin),
		encoder:    msgpack.NewEncoder(os.Stdout),
	}
}

// NewServerWithIO creates a server over explicit streams, used by tests.
func NewServerWithIO(eng *engine.Engine, r io.Reader, w io.Writer) *Server {
	return &Server{
		engine:  eng,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
	}
}

// Preload installs an already prepared text so clients can search without a
// set_text round trip.
func (s *Server) Preload(prep *textprep.PreparedText) {
	s.prep = prep
}

// Start begins listening for IPC requests
func (s *Server) Start() error {
	log.Debug("Starting server.")

	// Signal that the server is ready
	s.send(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.decoder.Decode(&request); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches on the request action
func (s *Server) handleRequest(request Request) {
	s.requests++
	switch request.Action {
	case "set_text":
		s.handleSetText(request)
	case "els":
		s.handleELS(request)
	case "sequence":
		s.handleSequence(request)
	case "chain":
		s.handleChain(request)
	case "grid":
		s.handleGrid(request)
	case "matrix":
		s.handleMatrix(request)
	case "suggest_counts":
		s.handleGrid(request)
	case "config":
		s.handleConfig(request)
	case "health":
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown action: %s", request.Action), 400)
	}
}

func (s *Server) handleSetText(request Request) {
	cfg := s.engine.Config()
	if request.Text == "" {
		s.sendError(request.ID, "Missing 'text' parameter", 400)
		return
	}
	if max := cfg.Server.MaxTextSize; max > 0 && len(request.Text) > max {
		s.sendError(request.ID, fmt.Sprintf("Text exceeds maximum size of %d bytes", max), 400)
		return
	}
	prep, err := s.engine.PrepareText(request.Text, request.Class)
	if err != nil {
		s.sendError(request.ID, err.Error(), 422)
		return
	}
	s.prep = prep
	s.send(StatusResponse{ID: request.ID, Status: "ok", Letters: prep.Len()})
}

// validateTerm applies the shared term checks; an empty return means rejected.
func (s *Server) validateTerm(request Request) string {
	if s.prep == nil {
		s.sendError(request.ID, "No text loaded, send set_text first", 409)
		return ""
	}
	term := strings.TrimSpace(request.Term)
	if term == "" {
		s.sendError(request.ID, "Missing 'term' parameter", 400)
		return ""
	}
	if max := s.engine.Config().Server.MaxTermLen; max > 0 && len(term) > max {
		s.sendError(request.ID, fmt.Sprintf("Term exceeds maximum length of %d", max), 400)
		return ""
	}
	return term
}

func (s *Server) handleELS(request Request) {
	term := s.validateTerm(request)
	if term == "" {
		return
	}
	dir := els.Forward
	if request.Backward {
		dir = els.Backward
	}
	skipMin, skipMax := request.SkipMin, request.SkipMax
	if skipMin == 0 && skipMax == 0 {
		skipMin, skipMax = 1, s.engine.Config().CLI.DefaultSkipMax
	}

	start := time.Now()
	summary, err := s.engine.SearchELS(context.Background(), s.prep, term, skipMin, skipMax, dir, nil)
	if err != nil {
		s.sendError(request.ID, err.Error(), 422)
		return
	}
	s.send(SearchResponse{
		ID:        request.ID,
		Term:      summary.Term,
		Results:   limited(summary.Results, request.Limit),
		Count:     len(summary.Results),
		TimeTaken: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleSequence(request Request) {
	term := s.validateTerm(request)
	if term == "" {
		return
	}
	mode, ok := skipseq.ModeByName(request.Mode)
	if !ok || mode == skipseq.Constant {
		s.sendError(request.ID, fmt.Sprintf("Unknown sequence mode: %q", request.Mode), 400)
		return
	}

	start := time.Now()
	summary, err := s.engine.SearchSequence(context.Background(), s.prep, term, mode, nil)
	if err != nil {
		s.sendError(request.ID, err.Error(), 422)
		return
	}
	s.send(SearchResponse{
		ID:        request.ID,
		Term:      summary.Term,
		Results:   limited(summary.Results, request.Limit),
		Count:     len(summary.Results),
		TimeTaken: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleChain(request Request) {
	term := s.validateTerm(request)
	if term == "" {
		return
	}
	start := time.Now()
	summary, err := s.engine.SearchChain(context.Background(), s.prep, term, request.Window, request.Starts, nil)
	if err != nil {
		s.sendError(request.ID, err.Error(), 422)
		return
	}
	s.send(ChainResponse{
		ID:        request.ID,
		Term:      summary.Term,
		Results:   limited(summary.Results, request.Limit),
		Broken:    summary.Broken,
		Count:     len(summary.Results),
		TimeTaken: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleGrid(request Request) {
	n := request.N
	if n == 0 && s.prep != nil {
		n = s.prep.Len()
	}
	factors, err := s.engine.GridFactors(n)
	if err != nil {
		s.sendError(request.ID, err.Error(), 422)
		return
	}
	response := GridResponse{
		ID:    request.ID,
		Rows:  factors.Rows,
		Cols:  factors.Cols,
		Ideal: factors.Ideal,
	}
	if request.Tolerance > 0 {
		response.Suggestions = s.engine.SuggestCounts(n, request.Tolerance)
	}
	s.send(response)
}

func (s *Server) handleMatrix(request Request) {
	if s.prep == nil {
		s.sendError(request.ID, "No text loaded, send set_text first", 409)
		return
	}
	rows, cols := request.Rows, request.Cols
	if rows == 0 && cols == 0 {
		factors, err := s.engine.GridFactors(s.prep.Len())
		if err != nil {
			s.sendError(request.ID, err.Error(), 422)
			return
		}
		rows, cols = factors.Rows, factors.Cols
	}
	matrix, err := s.engine.BuildMatrix(s.prep, rows, cols)
	if err != nil {
		s.sendError(request.ID, err.Error(), 422)
		return
	}
	lines := make([]string, len(matrix))
	for i, row := range matrix {
		lines[i] = string(row)
	}
	s.send(MatrixResponse{ID: request.ID, Rows: lines})
}

func (s *Server) handleConfig(request Request) {
	cfg := s.engine.Config()
	if request.MaxSkipSpan == nil && request.MaxResults == nil && request.MaxWindow == nil {
		s.sendError(request.ID, "No config fields supplied", 400)
		return
	}
	if s.configPath == "" {
		// No backing file: apply in memory only.
		if request.MaxSkipSpan != nil {
			cfg.Search.MaxSkipSpan = *request.MaxSkipSpan
		}
		if request.MaxResults != nil {
			cfg.Search.MaxResults = *request.MaxResults
		}
		if request.MaxWindow != nil {
			cfg.Chain.MaxWindow = *request.MaxWindow
		}
	} else if err := cfg.Update(s.configPath, request.MaxSkipSpan, request.MaxResults, request.MaxWindow); err != nil {
		s.sendError(request.ID, err.Error(), 500)
		return
	}
	s.send(StatusResponse{ID: request.ID, Status: "ok"})
}

// send marshals the given response and writes it to the client.
func (s *Server) send(response interface{}) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	log.Debugf("request %s rejected: %s", id, message)
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}

// limited applies a client-side result limit without touching the summary.
func limited[T any](results []T, limit int) []T {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
