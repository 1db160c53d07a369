package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "waitdeploy",
	Short: "Wait for a Netlify deploy of a commit to become ready",
	Long: "waitdeploy polls the Netlify API from a CI step until the deploy built from the current commit " +
		"is ready, then publishes its URL as the step output `url`.",
	SilenceUsage: true,
	RunE:         runWait,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("waitdeploy version %s\n", version)
	},
}

// registerConfigFlags adds the flags shared by every command that talks to Netlify.
func registerConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "Path to config file")
	cmd.Flags().String("site-id", "", "Netlify site id (input: site_id)")
	cmd.Flags().String("api-url", "", "Netlify API base URL")
	cmd.Flags().String("context", "", "Deploy context to wait for: preview|production|any (input: context)")
	cmd.Flags().String("is-preview", "", "Wait for a deploy preview (true) or production (false) (input: is_preview)")
	cmd.Flags().String("sha", "", "Commit sha (default: from the workflow event)")
}

// registerWaitFlags adds the flags of the wait command.
func registerWaitFlags(cmd *cobra.Command) {
	registerConfigFlags(cmd)
	cmd.Flags().String("max-timeout", "", "Maximum wait in seconds (input: max_timeout, default 120)")
	cmd.Flags().String("interval", "", "Delay between attempts, e.g. 10s (input: interval)")
	cmd.Flags().String("comment", "", "Comment the result on the pull request (input: comment)")
}

func main() {
	registerWaitFlags(rootCmd)
	registerWaitFlags(waitCmd)

	registerConfigFlags(deploysCmd)
	deploysCmd.Flags().IntP("limit", "n", 20, "Maximum number of deploys to show")

	registerConfigFlags(doctorCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(waitCmd)
	rootCmd.AddCommand(deploysCmd)
	rootCmd.AddCommand(doctorCmd)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
