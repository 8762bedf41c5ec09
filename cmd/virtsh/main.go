package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jbweber/virtsh/internal/config"
	"github.com/jbweber/virtsh/internal/output"
	"github.com/jbweber/virtsh/internal/shell"
)

var (
	version = "dev"
	commit  = "unknown"
)

var (
	configPath string
	connectURI string
	outputFmt  string
	noHistory  bool
	noHeaders  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "virtsh",
	Short: "virtsh - interactive libvirt domain shell",
	Long: `virtsh is an interactive shell for managing libvirt domains.

It connects to a hypervisor and accepts commands at a "# " prompt:

  list                 List active and defined domains
  start <name>         Start a defined domain
  shutdown <name>      Ask a domain to shut down
  suspend <domain>     Pause a running domain (by ID or name)
  resume <domain>      Resume a paused domain (by ID or name)
  info <domain>        Show a domain's details (by ID, name, or UUID)
  connect <uri>        Connect to another hypervisor
  quit, exit           Leave the shell

Tab completes commands and domain names.`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShell,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/virtsh/config.yaml)")
	rootCmd.Flags().StringVarP(&connectURI, "connect", "c", "", "Hypervisor URI (overrides config)")
	rootCmd.Flags().StringVarP(&outputFmt, "output", "o", "", "Output format for list and info: table, yaml, json")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not load or save line history")
	rootCmd.Flags().BoolVar(&noHeaders, "no-headers", false, "Omit the header row from table listings")
}

func runShell(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(output.Options{
		Format:    output.Format(cfg.OutputFormat),
		NoHeaders: noHeaders,
	})
	if err != nil {
		return err
	}

	opts := []shell.Option{shell.WithFormatter(formatter)}
	if !noHistory {
		historyPath, err := cfg.HistoryPath()
		if err != nil {
			return err
		}
		opts = append(opts, shell.WithHistory(historyPath, cfg.HistoryLimit))
	}

	sh := shell.New(shell.LibvirtDialer(cfg.SocketPath, time.Duration(cfg.Timeout)), opts...)
	defer func() {
		if closeErr := sh.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close libvirt connection: %v\n", closeErr)
		}
	}()

	ctx := context.Background()
	if err := sh.Connect(ctx, cfg.URI); err != nil {
		return err
	}
	fmt.Println(sh.Banner())

	return sh.Run(ctx)
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.ShellConfig, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if connectURI != "" {
		cfg.URI = connectURI
	}
	if outputFmt != "" {
		cfg.OutputFormat = outputFmt
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
