package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/taskboard/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	var (
		transport   string
		httpHost    string
		httpPort    int
		httpPath    string
		httpTLSCert string
		httpTLSKey  string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes the task list as resources and
the board operations as tools.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdio carries the protocol, so only log to a file there.
			stdio := strings.EqualFold(strings.TrimSpace(transport), string(mcp.TransportStdio))
			s, err := openSession(stdio)
			if err != nil {
				return err
			}
			defer s.Close()
			// Every call starts from the stored list.
			s.Store.PersistOrder = true

			path := strings.TrimSpace(httpPath)
			if path == "" {
				path = "/mcp"
			}
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}

			runner := mcp.Runner{
				Store:            s.Store,
				Log:              s.Log,
				Name:             "taskboard",
				Version:          version,
				HTTPEndpointPath: path,
				HTTPServerCert:   strings.TrimSpace(httpTLSCert),
				HTTPServerKey:    strings.TrimSpace(httpTLSKey),
			}

			switch strings.ToLower(strings.TrimSpace(transport)) {
			case "", string(mcp.TransportHTTP):
				host := strings.TrimSpace(httpHost)
				if host == "" {
					host = "127.0.0.1"
				}
				if httpPort < 0 || httpPort > 65535 {
					return fmt.Errorf("invalid http-port %d", httpPort)
				}

				addr := net.JoinHostPort(host, strconv.Itoa(httpPort))
				runner.Transport = mcp.TransportHTTP
				runner.HTTPListenAddr = addr
				runner.OnHTTPListening = func(a net.Addr) {
					scheme := "http"
					if runner.HTTPServerCert != "" && runner.HTTPServerKey != "" {
						scheme = "https"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s://%s%s\n", scheme, displayAddr(host, a), path)
				}
			case string(mcp.TransportStdio):
				runner.Transport = mcp.TransportStdio
			default:
				return fmt.Errorf("unsupported transport %q (expected http or stdio)", transport)
			}

			return runner.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&httpHost, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&httpPort, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&httpPath, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&httpTLSCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&httpTLSKey, "http-tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}

// displayAddr prints the bound address, replacing a wildcard host with
// something a client can dial.
func displayAddr(host string, a net.Addr) string {
	tcpAddr, ok := a.(*net.TCPAddr)
	if !ok {
		return a.String()
	}

	displayHost := host
	if displayHost == "" || displayHost == "0.0.0.0" || displayHost == "::" {
		if tcpAddr.IP != nil && !tcpAddr.IP.IsUnspecified() {
			displayHost = tcpAddr.IP.String()
		} else {
			displayHost = "127.0.0.1"
		}
	}
	return net.JoinHostPort(displayHost, strconv.Itoa(tcpAddr.Port))
}
