package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathrecall/internal/ui/theme"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a learning-path document (use - for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open document: %w", err)
			}
			defer f.Close()
			r = f
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		path, items, err := a.Import(cmd.Context(), r, a.Config.User)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %q with %d items\n", theme.Correct.Render("Imported"), path.Topic, len(items))
		fmt.Fprintf(out, "Path ID: %s\n", path.ID)
		fmt.Fprintln(out, theme.Hint.Render("Start with: pathrecall practice "+path.ID))
		return nil
	},
}
