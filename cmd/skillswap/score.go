package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"skill-swap/internal/domain/matching"
	"skill-swap/internal/domain/user"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	scoreBreakdown bool
	scoreJSON      bool
)

var scoreCmd = &cobra.Command{
	Use:   "score <user1-file> <user2-file>",
	Short: "Score two profiles against each other",
	Long: "Reads two profiles (YAML, or JSON when the file ends in .json) and prints how well user1 matches user2. " +
		"A profile without an offeredSkills or wantedSkills key scores 0.",
	Args: cobra.ExactArgs(2),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().BoolVarP(&scoreBreakdown, "breakdown", "b", false, "Print the per-skill breakdown")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	u1, err := loadProfile(args[0])
	if err != nil {
		return err
	}
	u2, err := loadProfile(args[1])
	if err != nil {
		return err
	}

	m := matching.Evaluate(u1, u2)
	if scoreJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	}
	return writeScore(cmd.OutOrStdout(), m, scoreBreakdown)
}

func loadProfile(path string) (user.Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return user.Profile{}, fmt.Errorf("read %s: %w", path, err)
	}

	var p user.Profile
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(b, &p)
	} else {
		err = yaml.Unmarshal(b, &p)
	}
	if err != nil {
		return user.Profile{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return p, nil
}

func writeScore(w io.Writer, m matching.Match, breakdown bool) error {
	fmt.Fprintf(w, "match:  %d%% (%s)\n", m.Percentage, m.Label)
	fmt.Fprintf(w, "color:  %s\n", m.ColorClass)
	fmt.Fprintf(w, "badge:  %s\n", m.BadgeClass)
	if !breakdown {
		return nil
	}

	b := m.Breakdown
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "SIDE\tWANTED\tBEST OFFER\tSCORE")
	for _, e := range b.User1Wants {
		fmt.Fprintf(tw, "user1\t%s (%s)\t%s (%s)\t%.2f\n", e.Wanted.Name, e.Wanted.Level, e.BestMatch.Name, e.BestMatch.Level, e.Score)
	}
	for _, e := range b.User2Wants {
		fmt.Fprintf(tw, "user2\t%s (%s)\t%s (%s)\t%.2f\n", e.Wanted.Name, e.Wanted.Level, e.BestMatch.Name, e.BestMatch.Level, e.Score)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\ntotal:  %.2f / %.0f\n", b.TotalScore, b.MaxPossibleScore)
	if len(b.CommonSkills) > 0 {
		names := make([]string, 0, len(b.CommonSkills))
		for _, c := range b.CommonSkills {
			names = append(names, fmt.Sprintf("%s (%s -> %s)", c.Skill.Name, c.User1Level, c.User2Level))
		}
		fmt.Fprintf(w, "common: %s\n", strings.Join(names, ", "))
	}
	return nil
}
