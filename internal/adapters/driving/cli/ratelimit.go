package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var rateLimitCmd = &cobra.Command{
	Use:   "ratelimit",
	Short: "Show the current API quota",
	Long:  `Prints the remaining core API quota and its reset time. Requires a token.`,
	RunE:  runRateLimit,
}

func init() {
	rootCmd.AddCommand(rateLimitCmd)
}

func runRateLimit(cmd *cobra.Command, _ []string) error {
	if quotaReporter == nil {
		return errors.New("quota reporter not configured")
	}

	status, err := quotaReporter.Quota(context.Background())
	if err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	cmd.Printf("Rate Limit Status: %d / %d\n", status.Remaining, status.Limit)
	cmd.Printf("Resets at: %s\n", status.ResetAt.Format(time.RFC3339))
	return nil
}
