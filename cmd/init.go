package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/prettymuchbryce/typocheck/internal/config"
	"github.com/prettymuchbryce/typocheck/internal/pathutil"
)

var initUser bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example config file",
	Long: `Write an example ` + pathutil.ConfigFileName + ` to the current directory,
or to the user config location with --user. An existing file is left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := pathutil.ConfigFileName
		if initUser {
			var err error
			path, err = pathutil.UserConfigPath()
			if err != nil {
				return err
			}
		}

		created, err := config.WriteDefaultConfig(afero.NewOsFs(), path)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initUser, "user", false, "write the user config instead of the project config")
	rootCmd.AddCommand(initCmd)
}
