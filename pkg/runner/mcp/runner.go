package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"tableflip.dev/taskboard/pkg/app"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

// Runner coordinates MCP server startup.
type Runner struct {
	Store   *app.Store
	Log     *zap.Logger
	Name    string
	Version string

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	OnHTTPListening  func(net.Addr)
	HTTPServerCert   string
	HTTPServerKey    string
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	srv, err := r.NewServer()
	if err != nil {
		return err
	}

	switch t := r.Transport; t {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		r.logger().Info("serving MCP over stdio")
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

// NewServer builds the MCP server with the task tools and resources.
func (r Runner) NewServer() (*server.MCPServer, error) {
	if r.Store == nil {
		return nil, errors.New("mcp runner requires a task store")
	}
	name := r.Name
	if name == "" {
		name = "taskboard"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read and change the ordered task list. Tasks are referenced by id or by 1-based position."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(r.Store, r.Log)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv, nil
}

// Handler mounts the streamable HTTP transport at the endpoint path.
func (r Runner) Handler(srv *server.MCPServer) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Handle(r.endpointPath(), server.NewStreamableHTTPServer(srv))
	return router
}

func (r Runner) endpointPath() string {
	path := strings.TrimSpace(r.HTTPEndpointPath)
	if path == "" {
		return "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	tls := r.HTTPServerCert != "" || r.HTTPServerKey != ""
	if tls && (r.HTTPServerCert == "" || r.HTTPServerKey == "") {
		return errors.New("both http tls cert and key must be provided")
	}
	log := r.logger()

	addr := r.HTTPListenAddr
	if addr == "" {
		addr = "127.0.0.1:8080"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mcp: listen on %s: %w", addr, err)
	}
	log.Info("serving MCP over HTTP", zap.Stringer("addr", ln.Addr()), zap.String("path", r.endpointPath()), zap.Bool("tls", tls))
	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	httpSrv := &http.Server{
		Handler:           r.Handler(srv),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if ctx != nil {
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				log.Warn("MCP shutdown", zap.Error(err))
			}
		}()
	}

	if tls {
		err = httpSrv.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (r Runner) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log.Named("mcp")
}
