package cmd

import (
	"fmt"

	"github.com/adaptivemath/mathgen/internal/engine"
	"github.com/adaptivemath/mathgen/internal/generators"
	"github.com/adaptivemath/mathgen/internal/store"
	"github.com/adaptivemath/mathgen/internal/tui"
	"github.com/spf13/cobra"
)

// runSession opens the store, restores the mastery tracker, and launches the
// practice TUI.
func runSession(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	tracker, err := st.LoadBKT(ctx)
	if err != nil {
		return fmt.Errorf("load tracker: %w", err)
	}

	topic, _ := cmd.Flags().GetString("topic")
	typed, _ := cmd.Flags().GetBool("typed")

	return tui.Run(tui.Options{
		Registry: generators.NewRegistry(),
		Tracker:  tracker,
		Store:    st,
		Topic:    engine.QuestionType(topic),
		Typed:    typed,
	})
}
