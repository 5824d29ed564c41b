package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset PATH_ID",
	Short: "Delete a learning path with all of its progress and history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		user := a.Config.User
		path, err := a.OwnedPath(ctx, user, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !yes {
			fmt.Fprintf(out, "Delete %q and all of its progress? [y/N] ", path.Topic)
			scanner := bufio.NewScanner(cmd.InOrStdin())
			if !scanner.Scan() || !strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		if err := a.Reset(ctx, user, path.ID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %q.\n", path.Topic)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
