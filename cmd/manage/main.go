package main

import (
	"github.com/getblogd/blogd-services/cmd/manage/subcommands"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{ //nolint:exhaustruct
		Use:   "manage",
		Short: "blogd CLI for service management",
		Long:  `blogd CLI provides readiness checks, id generation and sample-data seeding for the blogs services.`,
	}

	rootCmd.AddCommand(subcommands.CmdReady())
	rootCmd.AddCommand(subcommands.CmdID())
	rootCmd.AddCommand(subcommands.CmdSeed())

	err := rootCmd.Execute()
	if err != nil {
		panic(err)
	}
}
