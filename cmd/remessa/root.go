package main

import (
	"github.com/spf13/cobra"
)

const skipConfigAnnotation = "remessa.skipConfig"

func newRootCommand() *cobra.Command {
	var configFlag string

	cmdCtx := &commandContext{configFlag: &configFlag}

	root := &cobra.Command{
		Use:           "remessa",
		Short:         "Encode shipping files and apply bank return files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := cmdCtx.ensureConfig()
			return err
		},
	}

	root.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to config file")

	root.AddCommand(
		newEncodeCommand(cmdCtx),
		newParseCommand(cmdCtx),
		newApplyCommand(cmdCtx),
		newTitlesCommand(cmdCtx),
		newDialectsCommand(cmdCtx),
		newConfigCommand(cmdCtx),
		newVersionCommand(),
	)
	return root
}

// shouldSkipConfig walks the command chain for the skip annotation, so
// commands like "config init" run before any config file exists.
func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipConfigAnnotation] == "true" {
			return true
		}
	}
	return false
}
