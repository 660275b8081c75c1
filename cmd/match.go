package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkravets/cv-match/internal/ai"
	"github.com/mkravets/cv-match/internal/ai/gemini"
	"github.com/mkravets/cv-match/internal/analyzer"
	"github.com/mkravets/cv-match/internal/domain"
	"github.com/mkravets/cv-match/internal/logger"
	"github.com/mkravets/cv-match/internal/matching"
	"github.com/mkravets/cv-match/internal/repository/memory"
	"github.com/mkravets/cv-match/internal/rules"
	"github.com/mkravets/cv-match/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptExit          = "Exit"
	PromptSkillMatches  = "Show skill matches"
	PromptDumpAnalysis  = "Dump analysis to file"
	PromptInterviewTips = "Show interview tips"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptSkillMatches, PromptInterviewTips, PromptDumpAnalysis, PromptExit},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a CV against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("cv", "c", "", "path to a plain-text CV file (overrides cv-file from the config)")
	matchCmd.Flags().String("job", "", "path to a plain-text job description file (overrides job-file from the config)")
	matchCmd.Flags().BoolP("auto-approve", "y", false, "print the report and exit without the interactive prompt")

	viper.BindPFlag("cv-file", matchCmd.Flags().Lookup("cv"))
	viper.BindPFlag("job-file", matchCmd.Flags().Lookup("job"))
}

// match is the main command for the cli.
func match(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting cv-match", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	cvPath := strings.TrimSpace(config.CVFile)
	jobPath := strings.TrimSpace(config.JobFile)
	if cvPath == "" || jobPath == "" {
		logger.Fatal("both a CV file and a job file are required",
			zap.String("hint", "set cv-file and job-file in the config or pass --cv and --job"),
		)
	}

	cvText, err := os.ReadFile(cvPath)
	if err != nil {
		logger.Fatal("reading CV file", zap.Error(err))
	}
	jobText, err := os.ReadFile(jobPath)
	if err != nil {
		logger.Fatal("reading job file", zap.Error(err))
	}

	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building AI generator", zap.Error(err))
	}

	maxLogLength := 0
	if config.AI != nil && config.AI.Gemini != nil {
		maxLogLength = config.AI.Gemini.MaxLogLength
	}

	service := matching.NewService(
		analyzer.New(generator, logger, maxLogLength),
		rules.NewEngine(rulesConfig(config.Rules, logger), logger),
		memory.NewCVStore(),
		memory.NewJobStore(),
		memory.NewMatchStore(),
		logger,
	)

	logger.Info("extracting CV", zap.String("file", cvPath))
	cv, err := service.IngestCV(ctx, filepath.Base(cvPath), string(cvText))
	if err != nil {
		logger.Fatal("extracting CV", zap.Error(err))
	}
	logger.Info("extracted CV", zap.String("name", cv.Name), zap.Int("skills", len(cv.Skills)))

	logger.Info("analyzing job description", zap.String("file", jobPath))
	job, err := service.IngestJob(ctx, string(jobText))
	if err != nil {
		logger.Fatal("analyzing job description", zap.Error(err))
	}
	logger.Info("analyzed job", zap.String("title", job.Title), zap.Int("required_skills", len(job.RequiredSkills)))

	result, err := service.Run(ctx, cv.ID, job.ID)
	if err != nil {
		logger.Fatal("matching failed", zap.Error(err))
	}

	printReport(result, cv, job)

	if cmd.Flag("auto-approve").Value.String() == "true" {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, result, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, result *domain.Match, logger *zap.Logger) error {
	switch action {
	case PromptSkillMatches:
		printSkillMatches(result.Analysis)
		return nil
	case PromptInterviewTips:
		if len(result.Analysis.InterviewTips) == 0 {
			fmt.Println("No interview tips in this analysis.")
			return nil
		}
		for _, tip := range result.Analysis.InterviewTips {
			fmt.Printf("  - %s\n", tip)
		}
		return nil
	case PromptDumpAnalysis:
		filename, err := dumpAnalysis(result)
		if err != nil {
			return fmt.Errorf("dump analysis to file: %w", err)
		}
		logger.Info("dumping analysis to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printReport(result *domain.Match, cv *domain.CV, job *domain.Job) {
	analysis := result.Analysis

	fmt.Printf("\n%s vs %q\n\n", cv.Filename, job.Title)
	fmt.Printf("Overall score:    %.1f / 100  (%s)\n", analysis.OverallScore, result.RecommendationLevel())
	fmt.Printf("Skills score:     %.1f\n", analysis.SkillsScore)
	fmt.Printf("Experience score: %.1f\n", analysis.ExperienceScore)
	fmt.Printf("Education score:  %.1f\n", analysis.EducationScore)

	if len(analysis.MatchingSkills) > 0 {
		fmt.Printf("\nMatching skills: %s\n", strings.Join(analysis.MatchingSkills, ", "))
	}
	if len(analysis.MissingSkills) > 0 {
		fmt.Printf("Missing skills:  %s\n", strings.Join(analysis.MissingSkills, ", "))
	}
	if analysis.ExperienceGapYears > 0 {
		fmt.Printf("Experience gap:  %.1f years\n", analysis.ExperienceGapYears)
	}

	if len(analysis.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, rec := range analysis.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
	}

	fmt.Printf("\nProcessed in %.1fs with %s\n\n", result.ProcessingTimeSeconds, analysis.AIModelUsed)
}

func printSkillMatches(analysis *domain.MatchAnalysis) {
	if len(analysis.SkillMatches) == 0 {
		fmt.Println("No per-skill breakdown in this analysis.")
		return
	}

	for _, sm := range analysis.SkillMatches {
		have := "missing"
		if sm.CVHasSkill {
			have = "present"
		}
		line := fmt.Sprintf("  %-20s %s, score %.2f", sm.SkillName, have, sm.MatchScore)
		if sm.GapAnalysis != "" {
			line += " / " + sm.GapAnalysis
		}
		fmt.Println(line)
	}
}

func dumpAnalysis(result *domain.Match) (string, error) {
	file, err := os.CreateTemp("", app+"-analysis-*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}

	if _, err := file.Write(pretty); err != nil {
		return "", err
	}

	return file.Name(), nil
}

func newGenerator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Generator, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required under the ai section")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	genLogger := logger.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))

	return gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
}

// rulesConfig decodes the free-form rules section, falling back to the
// defaults for anything unset or undecodable.
func rulesConfig(raw map[string]any, logger *zap.Logger) rules.Config {
	cfg := rules.DefaultConfig()
	if len(raw) == 0 {
		return cfg
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err == nil {
		err = decoder.Decode(raw)
	}
	if err != nil {
		logger.Warn("ignoring rules config", zap.Error(err))
		return rules.DefaultConfig()
	}

	return cfg
}
