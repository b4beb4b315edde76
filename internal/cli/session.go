package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/comet/internal/config"
	"github.com/dshills/comet/internal/session"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage remembered generation sessions",
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show session storage statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		stats, err := store.GetStats()
		if err != nil {
			return err
		}
		if !store.Enabled() {
			fmt.Fprintln(os.Stdout, "Session persistence is disabled.")
			return nil
		}
		fmt.Fprintf(os.Stdout, "Directory: %s\n", stats.Dir)
		fmt.Fprintf(os.Stdout, "Entries:   %d\n", stats.Entries)
		return nil
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all remembered sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Sessions cleared.")
		return nil
	},
}

func openStore() (*session.Store, error) {
	cfg, err := config.Load(nil)
	if err != nil {
		return nil, err
	}
	return session.New(cfg.Session.Enabled, cfg.Session.Dir)
}

func init() {
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionClearCmd)
}
