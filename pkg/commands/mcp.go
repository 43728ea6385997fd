package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/walkjournal/pkg/runner/mcp"
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
		Short: "Start the Model Context Protocol server",
		Long: `Launch an MCP server that lets an assistant record, search, edit and back up
walks. The journal stays open until the server stops.`,
		Example: `
walkjournal mcp
walkjournal mcp --transport http --http-port 8080
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := mcp.Runner{
				Name:             "walkjournal",
				Version:          version,
				HTTPEndpointPath: strings.TrimSpace(httpPath),
				HTTPServerCert:   strings.TrimSpace(httpTLSCert),
				HTTPServerKey:    strings.TrimSpace(httpTLSKey),
			}

			switch strings.ToLower(strings.TrimSpace(transport)) {
			case "", string(mcp.TransportStdio):
				r.Transport = mcp.TransportStdio
			case string(mcp.TransportHTTP):
				if httpPort < 0 || httpPort > 65535 {
					return fmt.Errorf("invalid http-port %d", httpPort)
				}
				host := strings.TrimSpace(httpHost)
				if host == "" {
					host = "127.0.0.1"
				}
				r.Transport = mcp.TransportHTTP
				r.HTTPListenAddr = net.JoinHostPort(host, strconv.Itoa(httpPort))
				r.OnHTTPListening = func(a net.Addr) {
					scheme := "http"
					if r.HTTPServerCert != "" {
						scheme = "https"
					}
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "MCP HTTP server listening on %s://%s%s\n", scheme, a, r.HTTPEndpointPath)
				}
			default:
				return fmt.Errorf("unsupported transport %q (expected stdio or http)", transport)
			}
			cmd.SilenceUsage = true

			j, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer j.Close()

			r.Service = j.svc
			return r.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportStdio), "Transport to use: stdio or http.")
	cmd.Flags().StringVar(&httpHost, "http-host", "127.0.0.1", "Host or interface for the http transport.")
	cmd.Flags().IntVar(&httpPort, "http-port", 8080, "Port for the http transport, 0 for a random one.")
	cmd.Flags().StringVar(&httpPath, "http-path", "/mcp", "HTTP endpoint path.")
	cmd.Flags().StringVar(&httpTLSCert, "http-tls-cert", "", "TLS certificate file for https.")
	cmd.Flags().StringVar(&httpTLSKey, "http-tls-key", "", "TLS private key file for https.")

	topLevel.AddCommand(cmd)
}
