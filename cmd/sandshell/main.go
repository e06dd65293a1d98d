package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	timeoutFlag  int
	keepCapsFlag bool
	bwrapFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "sandshell",
	Short: "Sandshell - sandboxed shell execution for LLM agents",
	Long: `Sandshell runs shell commands inside a bubblewrap sandbox: the whole host
filesystem is visible read-only, the network is unreachable, and writes only
land in throwaway tmpfs directories that vanish with the command.

It serves the sandboxed_shell tool over MCP stdio for agent runtimes, and
runs one-shot commands directly for scripting and verification.`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&timeoutFlag, "timeout", 0, "Timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&keepCapsFlag, "keep-caps", false, "Keep process capabilities inside the sandbox")
	rootCmd.PersistentFlags().StringVar(&bwrapFlag, "bwrap", "", "Path to the bwrap binary (overrides PATH lookup)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
