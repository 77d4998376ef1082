// Package main provides chapterctl, a terminal client for the chapter meal
// plan. It acts as a single local principal whose token and theme live in a
// YAML state file.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "chapterctl"

	// principal is the identity every CLI session acts as
	principal = "local"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".chapterctl.yaml"
	}
	return filepath.Join(dir, "chapterplate", "state.yaml")
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Chapter meal plan from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `chapterctl talks to the chapter meal API.

Members can check the menu, sign up for meals, request late plates, review
what they ate and manage their weekly presets. Staff can plan a week of
meals from a YAML file.`,
	}

	cmd.PersistentFlags().StringVar(&opts.statePath, "state", defaultStatePath(), "State file holding your login token and theme")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to LOG_LEVEL")
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api", "", "Meal API base URL; defaults to API_BASE_URL")

	cmd.AddCommand(
		loginCmd(opts),
		logoutCmd(opts),
		whoamiCmd(opts),
		registerCmd(opts),
		listingCmd(opts, "menu", "This week's menu"),
		listingCmd(opts, "today", "Today's meals"),
		listingCmd(opts, "past", "Past meals, with your reviews"),
		attendCmd(opts),
		latePlateCmd(opts),
		reviewCmd(opts),
		reviewsCmd(opts),
		presetsCmd(opts),
		themeCmd(opts),
		recommendCmd(opts),
		adminCmd(opts),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}
