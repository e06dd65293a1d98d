package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandshell/sandshell/internal/sandbox"
)

var runCmd = &cobra.Command{
	Use:   "run <command>",
	Short: "Run one command in the sandbox and print its output",
	Long: `Execute a single shell command in the sandbox and print the normalized
output to stdout. The process exits with the sandboxed command's exit code,
so it composes with shell scripting.

Examples:
  sandshell run "ls -la /"
  sandshell run "cat /etc/hostname | tr a-z A-Z"`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}

	exec := sandbox.NewExecutor(opts, newLogger())
	policy := sandbox.BuildPolicy(sandbox.CaptureAmbient(), opts)
	outcome := exec.Execute(cmd.Context(), policy, args[0])

	fmt.Println(outcome.Format())

	if outcome.State == sandbox.Completed && outcome.ExitCode > 0 {
		os.Exit(outcome.ExitCode)
	}
	return nil
}
