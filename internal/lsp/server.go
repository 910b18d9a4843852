package lsp

import (
	"sync"

	"github.com/snippets-ls/snippets-ls/internal/config"
	"github.com/snippets-ls/snippets-ls/internal/resolver"
	"github.com/snippets-ls/snippets-ls/internal/snippets"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

const serverName = "snippets-ls"

type Server struct {
	handler  protocol.Handler
	docs     *DocumentRegistry
	resolver *resolver.Resolver
	version  string
	log      commonlog.Logger

	mu       sync.RWMutex
	snippets snippets.Table
}

// NewServer returns a server that serves defaults until the client's
// initializationOptions have been resolved.
func NewServer(version string, defaults snippets.Table, opts ...resolver.Option) *Server {
	s := &Server{
		docs:     NewDocumentRegistry(),
		resolver: resolver.New(defaults, opts...),
		version:  version,
		log:      commonlog.GetLogger("snippets-ls.server"),
	}
	s.snippets = s.resolver.Defaults()

	s.handler = protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.textDocumentDidOpen,
		TextDocumentDidClose:   s.textDocumentDidClose,
		TextDocumentCompletion: s.textDocumentCompletion,
	}

	return s
}

// Run serves the protocol over stdio. Logs go to path, or stderr if nil.
func (s *Server) Run(verbosity int, path *string) error {
	commonlog.Configure(verbosity, path)
	srv := server.NewServer(&s.handler, serverName, false)
	return srv.RunStdio()
}

func (s *Server) table() snippets.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snippets
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	table := s.resolver.Resolve(config.ParseOptions(params.InitializationOptions))
	s.mu.Lock()
	s.snippets = table
	s.mu.Unlock()
	s.log.Infof("serving snippets for %d languages", len(table))

	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindNone
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(_ *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.Open(string(params.TextDocument.URI), params.TextDocument.LanguageID)
	return nil
}

func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.Close(string(params.TextDocument.URI))
	return nil
}
