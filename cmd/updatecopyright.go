package cmd

import (
	"github.com/spf13/cobra"
)

func newUpdateCopyrightCmd(env Environment) *cobra.Command {
	return &cobra.Command{
		Use:   "update-copyright [files...]",
		Short: "Extend the year range of existing copyright notices",
		Long: `The 'update-copyright' command rewrites the years of existing copyright notices so that
they run from the file's first commit to the current year. Only the year digits are changed.
Files without a notice are left alone.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDependencies, err := handleRootCommand(cmd, env)
			if err != nil {
				return err
			}
			return runHook(cmd.Context(), rootDependencies, args, hookOptions{})
		},
	}
}
