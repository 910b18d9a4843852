package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/snippets-ls/snippets-ls/internal/config"
	"github.com/snippets-ls/snippets-ls/internal/export"
	"github.com/snippets-ls/snippets-ls/internal/lsp"
	"github.com/snippets-ls/snippets-ls/internal/resolver"
	"github.com/snippets-ls/snippets-ls/internal/snippets"
	"github.com/spf13/cobra"
)

var (
	flagVerbose      int
	flagLogFile      string
	flagSnippetsFile string
	flagInline       string
	flagBuiltinOnly  bool
	flagFormat       string
	version          = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:           "snippets-ls",
	Short:         "Language server offering per-language snippet completions",
	Long:          "Serve snippet completions over the Language Server Protocol on stdio.",
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var listCmd = &cobra.Command{
	Use:   "list [language]",
	Short: "List languages, or the snippets for one language",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the resolved snippet table",
	Long:  "Print the resolved snippet table in one of: " + strings.Join(export.Formats, ", ") + ".",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.Flags().CountVarP(&flagVerbose, "verbose", "v", "log verbosity (repeat for more)")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "write logs to this file instead of stderr")

	for _, cmd := range []*cobra.Command{listCmd, exportCmd} {
		cmd.Flags().StringVar(&flagSnippetsFile, "snippets-file", "", "user snippets file (default ~/.config/snippets-ls/snippets.toml)")
		cmd.Flags().StringVar(&flagInline, "snippets", "", "inline snippets as a JSON object, as sent in initializationOptions")
		cmd.Flags().BoolVar(&flagBuiltinOnly, "builtin", false, "ignore user snippets and show only the built-in ones")
	}
	exportCmd.Flags().StringVarP(&flagFormat, "format", "f", "toml", "output format")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	defaults, err := snippets.Defaults()
	if err != nil {
		return err
	}

	var logPath *string
	if flagLogFile != "" {
		logPath = &flagLogFile
	}

	s := lsp.NewServer(version, defaults)
	return s.Run(flagVerbose+1, logPath)
}

// resolveFromFlags resolves the snippet table the way the server would for
// an editor sending the equivalent initializationOptions.
func resolveFromFlags() (snippets.Table, error) {
	defaults, err := snippets.Defaults()
	if err != nil {
		return nil, err
	}

	r := resolver.New(defaults)
	if flagBuiltinOnly {
		return r.Resolve(config.ParseOptions(nil)), nil
	}

	raw := map[string]any{}
	if flagSnippetsFile != "" {
		raw[config.KeySnippetsFile] = flagSnippetsFile
	}
	if flagInline != "" {
		inline, err := json.Parser().Unmarshal([]byte(flagInline))
		if err != nil {
			return nil, fmt.Errorf("parsing --snippets: %w", err)
		}
		raw[config.KeySnippets] = inline
	}

	opts := config.ParseOptions(raw)
	if len(opts.Warnings) > 0 {
		return nil, fmt.Errorf("invalid options: %s", strings.Join(opts.Warnings, "; "))
	}
	return r.Resolve(opts), nil
}

func runList(cmd *cobra.Command, args []string) error {
	table, err := resolveFromFlags()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, lang := range table.Languages() {
			fmt.Fprintf(out, "%s\t%d\n", lang, len(table[lang]))
		}
		return nil
	}

	set, ok := table.Lookup(args[0])
	if !ok {
		return fmt.Errorf("no snippets for language %q", args[0])
	}
	for _, trigger := range set.Triggers() {
		fmt.Fprintf(out, "%s\t%q\n", trigger, set[trigger])
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	table, err := resolveFromFlags()
	if err != nil {
		return err
	}

	data, err := export.Encode(table, flagFormat)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "snippets-ls:", err)
		os.Exit(1)
	}
}
