// Package lsp implements the language-server handlers for Longform
// documents: buffers are validated on open and on change, and the
// first translation error is published as a diagnostic.
package lsp

import (
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"longform"
)

// Handler tracks open document contents by URI.
type Handler struct {
	mu      sync.RWMutex
	content map[string]string
}

// NewHandler creates an empty handler.
func NewHandler() *Handler {
	return &Handler{content: make(map[string]string)}
}

// Initialize advertises full-document sync.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
		},
	}, nil
}

// Initialized completes the handshake.
func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

// Shutdown handles the shutdown request.
func (h *Handler) Shutdown(ctx *glsp.Context) error {
	return nil
}

// SetTrace accepts trace configuration without acting on it.
func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen validates a newly opened document.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	h.mu.Lock()
	h.content[params.TextDocument.URI] = params.TextDocument.Text
	h.mu.Unlock()

	h.publish(ctx, params.TextDocument.URI)
	return nil
}

// TextDocumentDidChange re-validates on every full-content change.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	for _, change := range params.ContentChanges {
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			h.mu.Lock()
			h.content[params.TextDocument.URI] = whole.Text
			h.mu.Unlock()
		}
	}

	h.publish(ctx, params.TextDocument.URI)
	return nil
}

// TextDocumentDidClose drops the buffer and clears its diagnostics.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	h.mu.Lock()
	delete(h.content, params.TextDocument.URI)
	h.mu.Unlock()

	sendDiagnostics(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

func (h *Handler) publish(ctx *glsp.Context, uri string) {
	h.mu.RLock()
	text := h.content[uri]
	h.mu.RUnlock()

	diagnostics := []protocol.Diagnostic{}
	if err := longform.Validate([]byte(text)); err != nil {
		diagnostics = ConvertError(err)
	}
	sendDiagnostics(ctx, uri, diagnostics)
}

func sendDiagnostics(ctx *glsp.Context, uri string, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
