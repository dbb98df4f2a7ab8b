// Package devctl implements the asrdctl developer tool: dependency
// checks, model downloads, test runners and smoke probes for the asrd
// server.
package devctl

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Indirection layer to allow stubbing in tests.
var (
	fnCheckDeps        = CheckDeps
	fnListModels       = ListModels
	fnFetchModel       = FetchModel
	fnRunUnitTests     = RunUnitTests
	fnRunBlackboxTests = RunBlackboxTests
	fnRunAllTests      = RunAllTests
	fnSmoke            = Smoke
)

// BuildRootCmd constructs the asrdctl command tree.
func BuildRootCmd() *cobra.Command {
	var (
		logLvl    string
		modelsDir string
		model     string
	)

	root := &cobra.Command{
		Use:           "asrdctl",
		Short:         "Developer utilities for the asrd transcription server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLvl, "log-level", envStr("ASRDCTL_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	root.PersistentFlags().StringVar(&modelsDir, "models-dir", "~/models/whisper", "Directory holding ggml model files")
	root.PersistentFlags().StringVar(&model, "model", "small", "Model name or file")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		SetLogLevel(logLvl)
	}

	depsCmd := &cobra.Command{
		Use:     "deps",
		Short:   "Check ffmpeg, ffprobe, whisper-cli and the model file",
		Example: "  asrdctl deps --model small",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnCheckDeps(cmd.Context(), modelsDir, model)
		},
	}
	root.AddCommand(depsCmd)

	modelsCmd := &cobra.Command{Use: "models", Short: "Inspect and download recognizer models"}
	modelsList := &cobra.Command{
		Use:   "list",
		Short: "List model files in the models directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnListModels(modelsDir)
		},
	}
	modelsFetch := &cobra.Command{
		Use:     "fetch <name>",
		Short:   "Download a ggml model into the models directory",
		Example: "  asrdctl models fetch small\n  asrdctl models fetch medium --models-dir ~/models/whisper",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fnFetchModel(cmd.Context(), modelsDir, args[0])
			return err
		},
	}
	modelsCmd.AddCommand(modelsList, modelsFetch)
	root.AddCommand(modelsCmd)

	testCmd := &cobra.Command{Use: "test", Short: "Run test suites"}
	testUnit := &cobra.Command{
		Use:   "unit",
		Short: "Run every package test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnRunUnitTests(cmd.Context())
		},
	}
	testBlackbox := &cobra.Command{
		Use:   "blackbox",
		Short: "Build the server and run the blackbox suite",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnRunBlackboxTests(cmd.Context())
		},
	}
	testAll := &cobra.Command{
		Use:   "all",
		Short: "Unit tests first, then blackbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnRunAllTests(cmd.Context())
		},
	}
	testCmd.AddCommand(testUnit, testBlackbox, testAll)
	root.AddCommand(testCmd)

	var smokeAddr string
	smokeCmd := &cobra.Command{
		Use:     "smoke",
		Short:   "Probe a server's read endpoints, spawning one if needed",
		Example: "  asrdctl smoke\n  asrdctl smoke --addr http://127.0.0.1:8200",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnSmoke(cmd.Context(), SmokeConfig{Addr: smokeAddr, ModelsDir: modelsDir, Model: model})
		},
	}
	smokeCmd.Flags().StringVar(&smokeAddr, "addr", "", "Base URL of a running server; empty builds and spawns one")
	root.AddCommand(smokeCmd)

	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(os.Stdout, true) }})
	root.AddCommand(completionCmd)

	return root
}

// Main runs the command tree and returns a process exit code.
func Main() int {
	if err := BuildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}
