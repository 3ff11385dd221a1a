package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/adaptivemath/mathgen/internal/engine"
	"github.com/adaptivemath/mathgen/internal/generators"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate questions as JSON (no database)",
	Long: `Generate one or more questions and print them as JSON, one object per line.

This is a stateless tool for scripting and inspection. Pass --seed for
reproducible output; the seed is advanced by one per question.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("type", "arithmetic", "Question type (see 'mathgen topics')")
	generateCmd.Flags().String("operation", "", "Pin a specific operation within the type")
	generateCmd.Flags().Float64("difficulty", 0.5, "Target difficulty in [0,1]")
	generateCmd.Flags().Int("grade", 0, "Pin a school grade (1-12); 0 derives it from difficulty")
	generateCmd.Flags().Int64("seed", 0, "Random seed for reproducible output (0 = random)")
	generateCmd.Flags().Int("count", 1, "Number of questions to generate")
	generateCmd.Flags().Bool("pretty", false, "Indent the JSON output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	typeVal, _ := cmd.Flags().GetString("type")
	operation, _ := cmd.Flags().GetString("operation")
	difficulty, _ := cmd.Flags().GetFloat64("difficulty")
	grade, _ := cmd.Flags().GetInt("grade")
	seed, _ := cmd.Flags().GetInt64("seed")
	count, _ := cmd.Flags().GetInt("count")
	pretty, _ := cmd.Flags().GetBool("pretty")

	if count < 1 {
		return fmt.Errorf("count must be at least 1")
	}

	registry := generators.NewRegistry()
	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}

	for i := 0; i < count; i++ {
		req := engine.Request{
			Difficulty: difficulty,
			Operation:  engine.Operation(operation),
			GradeLevel: grade,
		}
		if seed != 0 {
			s := seed + int64(i)
			req.Seed = &s
		}

		q, err := registry.Generate(engine.QuestionType(typeVal), req)
		if err != nil {
			return fmt.Errorf("generate question %d: %w", i+1, err)
		}
		if err := enc.Encode(q.ToMap()); err != nil {
			return fmt.Errorf("encode question %d: %w", i+1, err)
		}
	}
	return nil
}
