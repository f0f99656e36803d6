// Command skillswap runs maintenance tasks for the skill-swap service and scores
// profiles offline.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "skillswap",
	Short:         "Skill-swap maintenance and scoring tool",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func newLogger() *log.Logger {
	return log.New(os.Stderr, "", log.LstdFlags)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
