package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathrecall/internal/reminder"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send due reminders for the configured users",
	Long: `Counts due items for every configured reminder user and notifies those with
work waiting. Reminders are published to the broker when one is configured
and printed otherwise. With --watch the check repeats on the configured
interval until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		r := a.Reminder(reminder.NotifierFunc(func(_ context.Context, userID string, dueCount int) error {
			_, err := fmt.Fprintf(out, "%s has %d items due for review\n", userID, dueCount)
			return err
		}))

		if !watch {
			if n := r.Check(cmd.Context()); n == 0 {
				fmt.Fprintln(out, "No reminders to send.")
			}
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := r.Start(); err != nil {
			return err
		}
		defer r.Stop()

		fmt.Fprintf(out, "Checking every %s, press Ctrl+C to stop.\n", a.Config.Reminder.Interval)
		<-ctx.Done()
		return nil
	},
}

func init() {
	remindCmd.Flags().Bool("watch", false, "Keep running and check on the configured interval")
}
