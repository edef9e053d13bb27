// Command redex-lsp is the language server for the rule-book DSL.
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"ruleforge/internal/lsp"
)

const lsName = "redex-lsp"

var version = "0.0.1"

func main() {
	commonlog.Configure(1, nil)

	h := lsp.NewHandler()
	protocolHandler := protocol.Handler{
		Initialize:             h.Initialize,
		Initialized:            h.Initialized,
		Shutdown:               h.Shutdown,
		TextDocumentDidOpen:    h.TextDocumentDidOpen,
		TextDocumentDidClose:   h.TextDocumentDidClose,
		TextDocumentDidChange:  h.TextDocumentDidChange,
		TextDocumentCompletion: h.TextDocumentCompletion,
	}

	s := server.NewServer(&protocolHandler, lsName, false)
	log.Println("Starting redex-lsp server...")

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting redex-lsp server:", err)
		os.Exit(1)
	}
}
