package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"athlete-monitor/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write an example config file if none exists",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := config.CreateExample(); err != nil {
				return err
			}
			dir, err := config.GetConfigDir()
			if err != nil {
				return err
			}
			fmt.Printf("Config file: %s/config.json\n", dir)
			fmt.Println("Add your Strava API credentials from https://www.strava.com/settings/api to enable sync.")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check the config file for errors",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if errors.Is(err, config.ErrNoConfig) {
				fmt.Println("No config file, defaults apply. Run 'athlete-monitor config init' to create one.")
				return nil
			}
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.ValidateStrava(); err != nil {
				fmt.Printf("Config OK, Strava sync disabled: %v\n", err)
				return nil
			}
			fmt.Println("Config OK")
			return nil
		},
	})
	return cmd
}
