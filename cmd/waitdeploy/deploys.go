package main

import (
	"fmt"
	"os"

	"github.com/rigdev/waitdeploy/internal/adapter/netlify"
	"github.com/rigdev/waitdeploy/internal/core"
	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"
)

var deploysCmd = &cobra.Command{
	Use:   "deploys",
	Short: "List recent deploys of the site, marking the one that would be picked",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := githubactions.New()
		cfg, err := loadConfig(cmd, a)
		if err != nil {
			return err
		}
		if cfg.Site.ID == "" || cfg.Site.Token == "" {
			return fmt.Errorf("%w: site id and NETLIFY_TOKEN are required", core.ErrConfig)
		}
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := netlify.NewClient(cfg.Site.APIURL, cfg.Site.Token)
		if err != nil {
			return err
		}
		deploys, err := client.ListDeploys(cmd.Context(), cfg.Site.ID)
		if err != nil {
			return err
		}
		if len(deploys) == 0 {
			fmt.Println("No deploys found.")
			return nil
		}

		var picked *core.DeployRecord
		if cfg.Wait.SHA != "" {
			if mode, err := cfg.MatchMode(); err == nil {
				picked = core.MatchDeploy(deploys, cfg.Wait.SHA, mode)
			}
		}

		fmt.Fprintf(os.Stdout, "  %-26s %-12s %-16s %-20s %-9s %-17s %s\n",
			"DEPLOY ID", "STATE", "CONTEXT", "BRANCH", "COMMIT", "CREATED", "URL")
		fmt.Println("-------------------------------------------------------------------------------------------------------------------")

		for i, d := range deploys {
			if limit > 0 && i >= limit {
				break
			}
			marker := " "
			if picked != nil && picked.ID == d.ID {
				marker = "*"
			}
			url := d.SSLURL
			if d.State == core.StateReady {
				url = core.CanonicalURL(&d)
			}
			fmt.Fprintf(os.Stdout, "%s %-26s %-12s %-16s %-20s %-9s %-17s %s\n",
				marker,
				d.ID,
				d.State,
				d.Context,
				truncate(d.Branch, 20),
				truncateWithSuffix(d.CommitRef, 9, ""),
				d.CreatedAt.Format("2006-01-02 15:04"),
				url,
			)
		}

		return nil
	},
}
