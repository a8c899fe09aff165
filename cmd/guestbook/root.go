package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"guestgallery/cache"
	"guestgallery/client"
	"guestgallery/ui"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	appConfig *Config
	apiClient *client.Client
)

var rootCmd = &cobra.Command{
	Use:   "guestbook",
	Short: "Browse and add to the wedding photo gallery",
	Long: ui.StyleTitle.Render("guestbook") + " - Wedding Guest Gallery\n\n" +
		"List the photos guests have shared and upload your own from the terminal.",
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", DefaultConfigPath(), "Path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests and cache activity")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)
}

func initializeApp(cmd *cobra.Command, args []string) error {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	cfg, err := Load(configPath)
	if err != nil {
		return err
	}
	appConfig = cfg
	apiClient = client.New(cfg.APIBaseURL, nil)
	return nil
}

// cacheSlot is the on-disk gallery cache, or an in-memory one when the directory
// cannot be created.
func cacheSlot(cmd *cobra.Command) cache.Slot {
	slot, err := cache.NewFileSlot(appConfig.CacheDir)
	if err != nil {
		slog.Warn("gallery cache unavailable", "dir", appConfig.CacheDir, "error", err)
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatWarning("Gallery cache unavailable, continuing without it"))
		return cache.NewMemorySlot()
	}
	return slot
}

func getContext() context.Context {
	return context.Background()
}
