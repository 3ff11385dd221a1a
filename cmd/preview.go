package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/adaptivemath/mathgen/internal/engine"
	"github.com/adaptivemath/mathgen/internal/generators"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Interactively answer generated questions (no database)",
	Long: `Generate and interactively answer questions for a specific type.

This is a stateless developer tool: no database and no mastery tracking.
Useful for evaluating question quality across the difficulty range.

Answer with an option number (1-4) or type the value directly.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("type", "arithmetic", "Question type (see 'mathgen topics')")
	previewCmd.Flags().String("operation", "", "Pin a specific operation within the type")
	previewCmd.Flags().Float64("difficulty", 0.5, "Target difficulty in [0,1]")
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
}

func runPreview(cmd *cobra.Command, args []string) error {
	typeVal, _ := cmd.Flags().GetString("type")
	operation, _ := cmd.Flags().GetString("operation")
	difficulty, _ := cmd.Flags().GetFloat64("difficulty")
	count, _ := cmd.Flags().GetInt("count")

	registry := generators.NewRegistry()
	qt := engine.QuestionType(typeVal)
	if _, ok := registry.Get(qt); !ok {
		return fmt.Errorf("unknown question type %q (see 'mathgen topics')", typeVal)
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Printf("Type: %s (difficulty %.2f)\n\n", qt, difficulty)

	var correct int
	for i := 1; i <= count; i++ {
		q, err := registry.Generate(qt, engine.Request{
			Difficulty: difficulty,
			Operation:  engine.Operation(operation),
		})
		if err != nil {
			return fmt.Errorf("generate question %d: %w", i, err)
		}

		fmt.Printf("── Question %d/%d (%s) ──\n", i, count, q.DifficultyTier)
		fmt.Println(q.Expression)
		for j, o := range q.AllOptions {
			fmt.Printf("  %d) %s\n", j+1, o.Value)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Print("(skipped)\n\n")
			continue
		}

		// A bare option number picks from the list; anything else is graded
		// as a typed value.
		if len(answer) == 1 && answer[0] >= '1' && answer[0] <= '9' {
			if idx := int(answer[0] - '1'); idx < len(q.AllOptions) {
				answer = q.AllOptions[idx].Value
			}
		}

		if q.CorrectAnswer.Matches(answer) {
			correct++
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", q.CorrectAnswer.Value)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, count)
	return nil
}
