package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/pastelhq/pastel/internal/app"
	"github.com/pastelhq/pastel/internal/assistant"
	"github.com/pastelhq/pastel/internal/bridge"
	"github.com/pastelhq/pastel/internal/config"
	"github.com/pastelhq/pastel/internal/hn"
	"github.com/pastelhq/pastel/internal/logger"
	"github.com/pastelhq/pastel/internal/report"
)

var (
	debugMode             bool
	startFeed             string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "pastel",
	Short: "A Hacker News reader for your terminal",
	Long: `Pastel is a terminal Hacker News reader with an embedded AI reading
assistant. Browse the front page feeds, read comment threads, and select
any passage to have it explained or a reply drafted.

The assistant needs a running companion process; start one with
'pastel host' in another terminal.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&startFeed, "feed", "", "Feed to open on startup (topstories, newstories, beststories, askstories, showstories, jobstories)")
}

func initConfig() {
	if debugMode {
		if err := logger.Init(logger.DefaultLogPath); err != nil {
			fmt.Printf("Warning: %v\n", err)
		}
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("pastel %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("pastel %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if startFeed != "" {
		if _, err := hn.ParseFeed(startFeed); err != nil {
			return err
		}
		cfg.SetDefaultFeed(startFeed)
	}

	defer logger.Close()

	var opts []app.Option
	if socket := bridge.Detect(); socket != "" {
		invoker := bridge.NewSocketInvoker(socket)
		client := assistant.New(invoker, assistant.WithReporter(report.NewLog()))
		opts = append(opts, app.WithAssistantClient(client))
	}

	m := app.New(cfg, version, opts...)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
