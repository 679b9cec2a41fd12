package server

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/Darsh-A/obsidian-auto-headers/internal/logger"
	"github.com/Darsh-A/obsidian-auto-headers/pkg/config"
	"github.com/Darsh-A/obsidian-auto-headers/pkg/index"
	"github.com/Darsh-A/obsidian-auto-headers/pkg/suggest"
)

// Server handles the IPC for heading-link suggestions.
type Server struct {
	controller *suggest.Controller
	index      *index.Index
	store      index.Store
	cfg        *config.Config
	configPath string

	dec *msgpack.Decoder
	enc *msgpack.Encoder
	log *log.Logger
}

// NewServer creates a new suggestion server using stdin/stdout for IPC.
func NewServer(ctrl *suggest.Controller, ix *index.Index, store index.Store, cfg *config.Config, configPath string) *Server {
	return &Server{
		controller: ctrl,
		index:      ix,
		store:      store,
		cfg:        cfg,
		configPath: configPath,
		dec:        msgpack.NewDecoder(os.Stdin),
		enc:        msgpack.NewEncoder(os.Stdout),
		log:        logger.New("ipc"),
	}
}

// Start begins listening for IPC requests.
func (s *Server) Start() error {
	s.log.Debug("starting IPC server")

	// Signal that the server is ready
	s.send(StatusResponse{Status: "ready"})

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if err == io.EOF {
				return nil
			}
			s.log.Errorf("decoding request: %v", err)
			return err
		}
		s.handle(req)
	}
}

// handle dispatches one decoded request.
func (s *Server) handle(req Request) {
	switch req.Op {
	case "suggest":
		s.handleSuggest(req)
	case "detect":
		s.handleDetect(req)
	case "select":
		s.handleSelect(req)
	case "manual":
		s.controller.TriggerManually()
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	case "modified":
		if req.Doc == "" {
			s.sendError(req.ID, "missing 'doc' parameter", 400)
			return
		}
		s.index.ScheduleReindex(req.Doc)
		s.send(StatusResponse{ID: req.ID, Status: "scheduled"})
	case "renamed":
		if req.Doc == "" || req.OldDoc == "" {
			s.sendError(req.ID, "missing 'doc' or 'old' parameter", 400)
			return
		}
		s.index.HandleRename(req.Doc, req.OldDoc)
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	case "removed":
		if req.Doc == "" {
			s.sendError(req.ID, "missing 'doc' parameter", 400)
			return
		}
		s.index.HandleRemoval(req.Doc)
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	case "rebuild":
		s.index.RebuildAll()
		s.sendStats(req.ID, "ok")
	case "config":
		s.handleConfig(req)
	case "health":
		s.sendStats(req.ID, "ok")
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op: %s", req.Op), 400)
	}
}

// handleSuggest validates the query, runs the ranked search and answers with
// timing information.
func (s *Server) handleSuggest(req Request) {
	query := req.Query
	if query == "" {
		s.sendError(req.ID, "missing 'q' parameter", 400)
		return
	}
	if maxQuery := s.cfg.Server.MaxQuery; maxQuery > 0 && utf8.RuneCountInString(query) > maxQuery {
		s.sendError(req.ID, fmt.Sprintf("query exceeds maximum length of %d characters", maxQuery), 400)
		return
	}

	limit := req.Limit
	if limit < 1 || limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Suggest.MaxSuggestions
	}

	start := time.Now()
	results := s.controller.Suggestions(query)
	elapsed := time.Since(start)

	if len(results) > limit {
		results = results[:limit]
	}

	suggestions := make([]Suggestion, len(results))
	for i, r := range results {
		suggestions[i] = Suggestion{
			Heading: r.Heading,
			Doc:     r.DocumentID,
			Name:    r.DocumentName,
			Folder:  r.Folder,
			Level:   r.Level,
			Score:   r.Score,
			Match:   r.Type.String(),
		}
	}

	s.send(SuggestResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// handleDetect runs trigger detection over the supplied line text.
func (s *Server) handleDetect(req Request) {
	pos := suggest.Position{Line: req.Row, Ch: req.Cursor}
	trig, ok := s.controller.Detect(pos, lineEditor{text: req.Line})
	if !ok {
		s.send(DetectResponse{ID: req.ID})
		return
	}
	s.send(DetectResponse{
		ID:    req.ID,
		Found: true,
		Query: trig.Query,
		Start: trig.Span.Start.Ch,
		End:   trig.Span.End.Ch,
	})
}

// handleSelect builds the replacement link for the chosen heading. The host
// applies the replacement itself, so no editor is handed to the controller.
func (s *Server) handleSelect(req Request) {
	if req.Heading == "" || req.Doc == "" {
		s.sendError(req.ID, "missing 'h' or 'doc' parameter", 400)
		return
	}

	entry := index.Entry{
		Heading:      req.Heading,
		HeadingLower: strings.ToLower(req.Heading),
		DocumentID:   req.Doc,
	}
	if doc, ok := s.store.ResolveDocument(req.Doc); ok {
		entry.DocumentName = doc.Name
		entry.Folder = doc.Folder
	} else {
		base := path.Base(req.Doc)
		entry.DocumentName = strings.TrimSuffix(base, path.Ext(base))
	}

	trig := suggest.Trigger{Span: suggest.Span{
		Start: suggest.Position{Line: req.Row, Ch: req.Start},
		End:   suggest.Position{Line: req.Row, Ch: req.End},
	}}
	sel := s.controller.Select(entry, trig, nil)

	s.send(SelectResponse{
		ID:          req.ID,
		Replacement: sel.Replacement,
		Cursor:      sel.Cursor.Ch,
	})
}

// handleConfig applies runtime-adjustable suggest options and persists them.
func (s *Server) handleConfig(req Request) {
	if err := s.cfg.Update(s.configPath, req.MinChars, req.MaxSuggestions, req.Fuzzy, req.InsertAlias); err != nil {
		s.sendError(req.ID, fmt.Sprintf("saving config: %v", err), 500)
		return
	}
	s.send(StatusResponse{ID: req.ID, Status: "ok"})
}

func (s *Server) sendStats(id, status string) {
	stats := s.index.Stats()
	s.send(StatusResponse{
		ID:        id,
		Status:    status,
		Documents: stats["documents"],
		Headings:  stats["headings"],
		Pending:   stats["pending"],
	})
}

// send encodes one response onto stdout.
func (s *Server) send(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(Error{ID: id, Error: message, Code: code})
}

// lineEditor adapts a detect request's line text to the controller's editor
// surface. It is read-only; replace and cursor ops are host-side.
type lineEditor struct {
	text string
}

func (e lineEditor) LineUpTo(pos suggest.Position) string {
	runes := []rune(e.text)
	if pos.Ch >= 0 && pos.Ch < len(runes) {
		return string(runes[:pos.Ch])
	}
	return e.text
}

func (e lineEditor) ReplaceRange(span suggest.Span, text string) {}

func (e lineEditor) SetCursor(pos suggest.Position) {}
