//go:build !js

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/simulate"
	"github.com/Its-donkey/Sharpen-portfolio/site"
)

var simulateRealtime bool

var simulateCmd = &cobra.Command{
	Use:   "simulate [PAGE] SCRIPT",
	Short: "Replay a scripted session against a page",
	Long: `Boots the page layer on PAGE (the embedded index.html when omitted) with a
virtual clock, replays the YAML SCRIPT and prints the resulting state as JSON.

Example script:

  viewport: {width: 600, height: 800}
  steps:
    - {action: click, target: "#web"}
    - {action: wait, duration: 350ms}`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		scriptPath := args[len(args)-1]
		var page []byte
		if len(args) == 2 {
			page, err = os.ReadFile(args[0])
		} else {
			page, err = site.Index()
		}
		if err != nil {
			return fmt.Errorf("reading page: %w", err)
		}

		f, err := os.Open(scriptPath)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		script, err := simulate.ParseScript(f)
		if err != nil {
			return fmt.Errorf("%s: %w", scriptPath, err)
		}

		runner := simulate.NewRunner(simulate.Options{
			Config:   cfg,
			Logger:   newLogger(cfg, "simulate", cmd.ErrOrStderr()),
			Realtime: simulateRealtime,
		})
		state, err := runner.Run(bytes.NewReader(page), script)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	},
}

func init() {
	simulateCmd.Flags().BoolVar(&simulateRealtime, "realtime", false, "run timers and waits on the wall clock")
	rootCmd.AddCommand(simulateCmd)
}
