// Package cli handles cmd line input and suggestions for DBG and testing
// various features
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/Darsh-A/obsidian-auto-headers/pkg/suggest"
)

// InputHandler processes user phrases from stdin, printing ranked heading
// suggestions with their match tier and target document.
type InputHandler struct {
	controller   *suggest.Controller
	minChars     int
	maxQuery     int
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(controller *suggest.Controller, minChars, maxQuery int) *InputHandler {
	return &InputHandler{
		controller: controller,
		minChars:   minChars,
		maxQuery:   maxQuery,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	log.Print("Headlinks CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a phrase and press Enter to see heading suggestions (Ctrl+C to exit):")

	for {
		log.Print("> ")
		query, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		query = strings.TrimSpace(query)
		if query == "" {
			continue
		}
		h.handleInput(query)
	}
}

// handleInput processes a single phrase. It validates the phrase's length,
// asks the controller for suggestions and prints them with scores.
func (h *InputHandler) handleInput(query string) {
	h.requestCount++

	if utf8.RuneCountInString(query) < h.minChars {
		log.Errorf("Query too short: %s", query)
		return
	}
	if h.maxQuery > 0 && utf8.RuneCountInString(query) > h.maxQuery {
		log.Errorf("Query too long: %s", query)
		return
	}

	start := time.Now()
	log.Debug("Processing request for", "query", query)

	results := h.controller.Suggestions(query)

	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for query '%s'", elapsed, query)

	if len(results) == 0 {
		log.Warnf("No headings found for query: '%s'", query)
		return
	}

	log.Printf("Found %d suggestion(s) for '%s':", len(results), query)
	for i, r := range results {
		p := h.controller.Preview(r)
		target := fmt.Sprintf("\033[38;5;75m%s\033[0m", p.Heading)
		where := p.Document
		if p.Folder != "" {
			where = p.Folder + "/" + p.Document
		}
		log.Printf("%2d. %-50s %s (%s, score %d)", i+1, target, where, p.Match, r.Score)
	}
}
