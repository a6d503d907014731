// Package mcp exposes the listing operations as Model Context Protocol tools
// on stdio, and over plain HTTP.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/amineremache/dafty-mcp/internal/logger"
	"github.com/amineremache/dafty-mcp/internal/query"
	"github.com/amineremache/dafty-mcp/internal/version"
	"github.com/amineremache/dafty-mcp/pkg/daft"
)

// ErrUnknownTool is returned by Call for a name no tool is registered under.
var ErrUnknownTool = errors.New("unknown tool")

// Server dispatches tool calls.
type Server struct {
	searcher   Searcher
	translator Translator
	tools      []*Tool
	byName     map[string]*Tool
}

// NewServer creates a Server. A nil translator means the heuristic parser.
func NewServer(searcher Searcher, translator Translator) *Server {
	if translator == nil {
		translator = query.New(nil)
	}
	s := &Server{
		searcher:   searcher,
		translator: translator,
		byName:     make(map[string]*Tool),
	}
	s.registerTools()
	return s
}

// Tools returns the registered tools in declaration order.
func (s *Server) Tools() []*Tool {
	return s.tools
}

// Call runs the named tool. It returns ErrUnknownTool for an unregistered
// name; every other failure is a *ToolError.
func (s *Server) Call(ctx context.Context, name string, args json.RawMessage) (result any, err error) {
	t, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	log := logger.With("tool", name)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error("tool panicked", "panic", r)
			result = nil
			err = &ToolError{Kind: daft.KindScraper, Stage: "tool", Message: fmt.Sprintf("unexpected failure: %v", r)}
		}
	}()

	result, err = t.handler(ctx, args)
	if err != nil {
		te := toToolError(err)
		attrs := []any{"kind", te.Kind, "stage", te.Stage, "error", te.Message, "duration", time.Since(start)}
		if te.Criteria != nil {
			attrs = append(attrs, "criteria", te.Criteria)
		}
		log.Warn("tool failed", attrs...)
		return nil, te
	}

	log.Info("tool completed", "duration", time.Since(start))
	return result, nil
}

func serverInfo() map[string]string {
	return map[string]string{"name": version.Name, "version": version.String()}
}
