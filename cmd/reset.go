package cmd

import (
	"fmt"

	"github.com/adaptivemath/mathgen/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete saved mastery tracker snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		trackerVal, _ := cmd.Flags().GetString("tracker")

		var trackers []string
		switch trackerVal {
		case "all":
			trackers = []string{store.TrackerBKT, store.TrackerEMA}
		case store.TrackerBKT, store.TrackerEMA:
			trackers = []string{trackerVal}
		default:
			return fmt.Errorf("invalid tracker %q: must be bkt, ema, or all", trackerVal)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		for _, tr := range trackers {
			if err := st.DeleteSnapshots(ctx, tr); err != nil {
				return fmt.Errorf("delete %s snapshots: %w", tr, err)
			}
			fmt.Printf("Deleted %s snapshots.\n", tr)
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().String("tracker", "all", "Which tracker to reset: bkt, ema, or all")
}
