// SPDX-License-Identifier: Apache-2.0

// The longform-lsp binary serves validation diagnostics for Longform
// documents over the Language Server Protocol on stdio.
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"longform/internal/lsp"
)

const serverName = "longform"

var handler protocol.Handler

func main() {
	commonlog.Configure(1, nil)

	docHandler := lsp.NewHandler()

	handler = protocol.Handler{
		Initialize:            docHandler.Initialize,
		Initialized:           docHandler.Initialized,
		Shutdown:              docHandler.Shutdown,
		SetTrace:              docHandler.SetTrace,
		TextDocumentDidOpen:   docHandler.TextDocumentDidOpen,
		TextDocumentDidChange: docHandler.TextDocumentDidChange,
		TextDocumentDidClose:  docHandler.TextDocumentDidClose,
	}

	s := server.NewServer(&handler, serverName, false)

	log.Println("Starting Longform LSP server...")
	if err := s.RunStdio(); err != nil {
		log.Println("Error running Longform LSP server:", err)
		os.Exit(1)
	}
}
