package main

import (
	"log"

	"skill-sync-resume/internal/app"
	"skill-sync-resume/internal/config"
	"skill-sync-resume/internal/domain/skill"
	"skill-sync-resume/internal/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const appName = "skillctl"

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "skillctl extracts and matches resume skills and manages the resume database",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("vocabulary", "", "skill vocabulary yaml file (default is the built-in vocabulary)")
	rootCmd.PersistentFlags().String("mode", "", "skill match mode: substring or word_boundary")

	bindFlag("debug", "LOG_DEBUG")
	bindFlag("json", "LOG_JSON")
	bindFlag("vocabulary", "SKILL_VOCABULARY_FILE")
	bindFlag("mode", "SKILL_MATCH_MODE")
}

func bindFlag(name, env string) {
	if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
		log.Fatalf("binding %s flag: %v", name, err)
	}
	if err := viper.BindEnv(name, env); err != nil {
		log.Fatalf("binding %s environment variable: %v", env, err)
	}
}

func newLogger() *zap.Logger {
	lg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return lg
}

// newExtractor builds the extractor from flags or their environment
// variables, so extract and match run without a database.
func newExtractor() (*skill.Extractor, error) {
	return app.NewSkillExtractor(config.SkillsConfig{
		VocabularyFile: viper.GetString("vocabulary"),
		MatchMode:      viper.GetString("mode"),
	})
}
