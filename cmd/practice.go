package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathrecall/internal/ui/theme"
)

var practiceCmd = &cobra.Command{
	Use:   "practice PATH_ID",
	Short: "Work through a learning path, resuming at the first unrated item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		q, err := a.Manager.StartPath(ctx, user, path.ID)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if q.Len() == 0 {
			fmt.Fprintln(out, "This path has no items.")
			return nil
		}

		fmt.Fprintln(out, theme.Title.Render(path.Topic))
		if q.Position() > 0 {
			fmt.Fprintln(out, theme.Subtitle.Render(fmt.Sprintf("Resuming at item %d of %d", q.Position()+1, q.Len())))
		}
		fmt.Fprintln(out)

		_, err = runSession(ctx, cmd.InOrStdin(), out, a.Manager, q, a.Manager.Now)
		return err
	},
}
