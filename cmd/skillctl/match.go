package main

import (
	"fmt"
	"strings"

	"skill-sync-resume/internal/domain/matching"
	"skill-sync-resume/internal/usecase"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Compare a candidate skill list with a required skill list",
	RunE: func(cmd *cobra.Command, _ []string) error {
		candidate, _ := cmd.Flags().GetStringSlice("candidate")
		required, _ := cmd.Flags().GetStringSlice("required")

		res := matching.Calculate(usecase.SkillSetFromNames(candidate), usecase.SkillSetFromNames(required))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "match: %.2f%%\n", res.MatchPercentage)
		fmt.Fprintf(out, "matched: %s\n", strings.Join(res.MatchedSkills.Strings(), ", "))
		fmt.Fprintf(out, "missing: %s\n", strings.Join(res.MissingSkills.Strings(), ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringSlice("candidate", nil, "candidate skills, comma separated")
	matchCmd.Flags().StringSlice("required", nil, "required skills, comma separated")
}
