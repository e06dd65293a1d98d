package main

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/sandshell/sandshell/internal/sandbox"
	"github.com/sandshell/sandshell/internal/tool"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the sandboxed_shell tool over MCP stdio",
	Long: `Start an MCP server on stdin/stdout exposing the sandboxed_shell tool.

Point an MCP-capable agent runtime at this command to let it run shell
commands safely:

  sandshell serve
  sandshell serve --timeout 30 --keep-caps`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}

	logger := newLogger()
	if !sandbox.Available(opts.BwrapPath) {
		logger.Warn("bwrap not found; tool calls will report the missing dependency")
	}

	s := server.NewMCPServer("sandshell", version)
	tool.Register(s, sandbox.NewExecutor(opts, logger))

	logger.Info("serving MCP on stdio",
		"timeout", opts.Timeout,
		"cap_drop", opts.DropCapabilities,
	)
	return server.ServeStdio(s)
}
