package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/sphaso/treap/internal/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the treap HTTP API",
		Long: `Serve the treap HTTP API.

The API stores named trees and renders them on demand:

  POST   /v1/trees             create or replace a named tree
  GET    /v1/trees             list stored trees
  GET    /v1/trees/{name}      fetch the JSON tree document
  GET    /v1/trees/{name}/art  fetch the rendered text art
  GET    /v1/trees/{name}/dot  fetch the DOT graph
  DELETE /v1/trees/{name}      remove a stored tree

The tree store backend comes from the configuration ("file", "memory", or
"mongo"), as does the render cache (Redis when an address is configured,
a local file cache otherwise). The server runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+server.DefaultAddr+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable render caching")

	return cmd
}

// runServe wires the configured store and cache into the server and blocks
// until the context is canceled.
func (c *CLI) runServe(cmd *cobra.Command, addr string, noCache bool) error {
	ctx := cmd.Context()

	if addr == "" {
		addr = c.Config.Addr
	}
	if addr == "" {
		addr = server.DefaultAddr
	}

	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}

	cacheBackend, err := c.newCache(cmd, noCache)
	if err != nil {
		st.Close()
		return err
	}

	srv := server.New(server.Config{
		Addr:   addr,
		Store:  st,
		Cache:  cacheBackend,
		Logger: c.Logger,
	})
	defer srv.Close()

	printInfo("Serving treap API on %s", addr)
	printNextStep("Try it", "curl http://"+hostFor(addr)+"/healthz")
	printNewline()

	return srv.Start(ctx)
}

// hostFor turns a listen address into something curl accepts: a bare
// ":8080" becomes "localhost:8080".
func hostFor(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
