package main

import (
	"errors"
	"fmt"

	"github.com/rigdev/waitdeploy/internal/adapter/netlify"
	"github.com/rigdev/waitdeploy/internal/config"
	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check inputs, token and site access without waiting",
	RunE: func(cmd *cobra.Command, args []string) error {
		allOK := true

		fmt.Println("=== waitdeploy doctor ===")
		fmt.Println()

		a := githubactions.New()
		cfg, err := loadConfig(cmd, a)
		if err != nil {
			fmt.Printf("[FAIL] load config: %v\n", err)
			return err
		}
		fmt.Println("[OK] configuration loaded")

		if ev := resolveSHA(a, cfg); ev != nil {
			fmt.Printf("[OK] commit %s (event %q)\n", ev.SHA, ev.Name)
		} else {
			fmt.Println("[WARN] commit sha could not be resolved (pass --sha outside of a workflow)")
		}

		if err := config.Validate(cfg); err != nil {
			fmt.Printf("[FAIL] %v\n", err)
			allOK = false
		} else {
			mode, _ := cfg.MatchMode()
			fmt.Printf("[OK] waiting for %s deploys for up to %ds\n", mode, cfg.Wait.MaxTimeout)
		}

		if cfg.Site.ID != "" && cfg.Site.Token != "" {
			client, err := netlify.NewClient(cfg.Site.APIURL, cfg.Site.Token)
			if err != nil {
				fmt.Printf("[FAIL] %v\n", err)
				allOK = false
			} else if site, err := client.GetSite(cmd.Context(), cfg.Site.ID); err != nil {
				fmt.Printf("[FAIL] netlify site access: %v\n", err)
				allOK = false
			} else {
				fmt.Printf("[OK] netlify site %s (%s)\n", site.Name, site.SSLURL)
			}
		}

		fmt.Println()
		if !allOK {
			return errors.New("doctor found problems")
		}
		fmt.Println("All checks passed.")
		return nil
	},
}
