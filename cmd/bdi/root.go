package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/betterdiscord/installer-cli/internal/messages"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolP("version", "v", false, messages.RootVersionFlag)
	cmd.AddCommand(newInstallCmd(), newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.VersionUse,
		Short: messages.VersionShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), versionString())
			return err
		},
	}
}
