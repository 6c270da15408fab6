package cmd

import (
	"github.com/spf13/cobra"
)

func newAddCopyrightCmd(env Environment) *cobra.Command {
	var name, format string

	addCopyrightCmd := &cobra.Command{
		Use:   "add-copyright [files...]",
		Short: "Add a copyright notice to files that lack one",
		Long: `The 'add-copyright' command makes sure every given file carries a copyright notice.
Files without a notice get one at the top, after any shebang line, covering the years from the
file's first commit to now. Existing notices are extended the same way 'update-copyright' does.
The holder name defaults to the git user.name and the format to 'Copyright (c) {year} {name}'.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDependencies, err := handleRootCommand(cmd, env)
			if err != nil {
				return err
			}
			return runHook(cmd.Context(), rootDependencies, args, hookOptions{
				name:          name,
				format:        format,
				insertMissing: true,
			})
		},
	}

	addCopyrightCmd.Flags().StringVarP(&name, "name", "n", "", "Copyright holder for new notices.")
	addCopyrightCmd.Flags().StringVarP(&format, "format", "f", "", "Template for new notices, must contain {year} and {name}.")
	return addCopyrightCmd
}
