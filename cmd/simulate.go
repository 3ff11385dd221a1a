package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/adaptivemath/mathgen/internal/mastery"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate a learner against the mastery trackers (no database)",
	Long: `Run a simulated learner with a fixed accuracy through the BKT and EMA
trackers and print the mastery trajectory.

Useful for tuning tracker parameters: it shows how fast each model converges
and how the recommended difficulty moves as mastery grows.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().String("topic", "arithmetic", "Topic ID for the simulated skill")
	simulateCmd.Flags().Float64("accuracy", 0.8, "Probability the simulated learner answers correctly")
	simulateCmd.Flags().Int("questions", 20, "Number of simulated questions")
	simulateCmd.Flags().Int64("seed", 0, "Random seed for the answer sequence (0 = random)")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	accuracy, _ := cmd.Flags().GetFloat64("accuracy")
	questions, _ := cmd.Flags().GetInt("questions")
	seed, _ := cmd.Flags().GetInt64("seed")

	if accuracy < 0 || accuracy > 1 {
		return fmt.Errorf("accuracy must be in [0,1]")
	}
	if questions < 1 {
		return fmt.Errorf("questions must be at least 1")
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	bkt, err := mastery.NewBKTTracker(mastery.DefaultBKTParams())
	if err != nil {
		return err
	}
	ema, err := mastery.NewEMATracker(mastery.DefaultAlpha)
	if err != nil {
		return err
	}

	fmt.Printf("Topic %q, accuracy %.0f%%, seed %d\n\n", topic, accuracy*100, seed)
	fmt.Printf("%4s  %7s  %12s  %12s  %12s\n", "Q", "Answer", "BKT mastery", "EMA mastery", "BKT difficulty")

	responseTime := 15 * time.Second
	for i := 1; i <= questions; i++ {
		correct := rng.Float64() < accuracy
		bktMastery := bkt.Update(topic, "", correct, responseTime)
		emaMastery := ema.Update(topic, "", correct, responseTime)

		label := "wrong"
		if correct {
			label = "right"
		}
		fmt.Printf("%4d  %7s  %12.3f  %12.3f  %12.2f\n",
			i, label, bktMastery, emaMastery, bkt.RecommendedDifficulty(topic, ""))
	}

	remaining := bkt.EstimateQuestionsToMastery(topic, "", 0.95, 200)
	fmt.Printf("\nBKT predicts P(correct) = %.2f; ", bkt.PredictCorrect(topic, ""))
	switch {
	case remaining == 0:
		fmt.Println("skill is already at mastery.")
	case remaining >= 200:
		fmt.Println("at least 200 more all-correct answers to reach 0.95 mastery.")
	default:
		fmt.Printf("%d more all-correct answers to reach 0.95 mastery.\n", remaining)
	}
	return nil
}
