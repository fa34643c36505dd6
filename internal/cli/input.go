// Package cli handles cmd line input and search queries for DBG and testing various features
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rdayan/elscan/internal/logger"
	"github.com/rdayan/elscan/internal/utils"
	"github.com/rdayan/elscan/pkg/els"
	"github.com/rdayan/elscan/pkg/engine"
	"github.com/rdayan/elscan/pkg/skipseq"
	"github.com/rdayan/elscan/pkg/textprep"
)

// InputHandler processes search terms from stdin against a loaded text,
// running a constant-skip sweep plus a chain pass per term. It accepts flags
// controlling the skip range, chain window, result limit and filtering.
type InputHandler struct {
	engine       *engine.Engine
	prep         *textprep.PreparedText
	log          *log.Logger
	skipMin      int
	skipMax      int
	window       int
	resultLimit  int
	requestCount int
	noFilter     bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(eng *engine.Engine, prep *textprep.PreparedText, skipMin, skipMax, window, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		engine:      eng,
		prep:        prep,
		log:         logger.New("cli"),
		skipMin:     skipMin,
		skipMax:     skipMax,
		window:      window,
		resultLimit: limit,
		noFilter:    noFilter,
	}
}

// Start begins the interface loop.
// It continuously prompts for a term, reads a line from stdin, and passes the
// trimmed input to handleTerm. Lines prefixed with "seq:" select a derived
// progression instead of the constant-skip sweep, e.g. "seq:fibonacci cat".
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	h.log.Printf("elscan CLI -- %d letters loaded", h.prep.Len())
	reader := bufio.NewReader(os.Stdin)
	h.log.Print("type a term and press Enter to search (Ctrl+C to exit):")

	for {
		h.log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleTerm(line)
	}
}

// handleTerm validates one term and runs the search passes for it.
func (h *InputHandler) handleTerm(line string) {
	h.requestCount++

	if mode, term, ok := parseSequenceQuery(line); ok {
		h.runSequence(term, mode)
		return
	}

	if !h.noFilter && !utils.IsValidTerm(line) {
		h.log.Warnf("Rejected term: '%s' (letters only, no repeats)", line)
		return
	}

	start := time.Now()
	summary, err := h.engine.SearchELS(context.Background(), h.prep, line, h.skipMin, h.skipMax, els.Forward, nil)
	if err != nil {
		h.log.Errorf("Search failed: %v", err)
		return
	}
	h.log.Debugf("Took [ %v ] for term '%s'", time.Since(start), line)

	if len(summary.Results) == 0 {
		h.log.Warnf("No equidistant hits for '%s' in skips [%d,%d]", line, h.skipMin, h.skipMax)
	} else {
		h.printResults(summary)
	}
	h.runChain(line)
}

func (h *InputHandler) runSequence(term string, mode skipseq.Mode) {
	summary, err := h.engine.SearchSequence(context.Background(), h.prep, term, mode, nil)
	if err != nil {
		h.log.Errorf("Sequence search failed: %v", err)
		return
	}
	if len(summary.Results) == 0 {
		h.log.Warnf("No %s-sequence hits for '%s'", mode, term)
		return
	}
	h.printResults(summary)
}

func (h *InputHandler) runChain(term string) {
	summary, err := h.engine.SearchChain(context.Background(), h.prep, term, h.window, nil, nil)
	if err != nil {
		h.log.Errorf("Chain search failed: %v", err)
		return
	}
	if len(summary.Results) == 0 {
		h.log.Warnf("No chains for '%s' within window %d", term, h.window)
		return
	}
	shown := min(len(summary.Results), h.resultLimit)
	h.log.Printf("Found %d chains for '%s' (showing %d):", len(summary.Results), term, shown)
	for i, r := range summary.Results[:shown] {
		positions := make([]string, len(r.Steps))
		for j, step := range r.Steps {
			positions[j] = fmt.Sprintf("%d", step.Position)
		}
		h.log.Printf("%2d. length %4d  value %6d  at [%s]", i+1, r.TotalLength, r.TotalValue, strings.Join(positions, " "))
	}
}

func (h *InputHandler) printResults(summary *els.Summary) {
	shown := min(len(summary.Results), h.resultLimit)
	h.log.Printf("Found %d hits for '%s' (showing %d):", len(summary.Results), summary.Term, shown)
	for i, r := range summary.Results[:shown] {
		clTerm := fmt.Sprintf("\033[38;5;75m%s\033[0m", r.Term)
		h.log.Printf("%2d. %-24s skip %4d  start %6d  %s  value %6d", i+1, clTerm, r.Skip, r.StartPos, r.Direction, r.TermValue)
	}
}

// parseSequenceQuery recognizes "seq:<mode> <term>" lines.
func parseSequenceQuery(line string) (skipseq.Mode, string, bool) {
	if !strings.HasPrefix(line, "seq:") {
		return 0, "", false
	}
	rest := strings.TrimPrefix(line, "seq:")
	parts := strings.Fields(rest)
	if len(parts) != 2 {
		return 0, "", false
	}
	mode, ok := skipseq.ModeByName(parts[0])
	if !ok || mode == skipseq.Constant {
		return 0, "", false
	}
	return mode, parts[1], true
}
