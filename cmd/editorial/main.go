// Command editorial scores news articles against the editorial quality rubric,
// either as an HTTP service or one file at a time from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lbt00001-beep/mbainative-website-sub000/internal/config"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/evaluation"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/llm"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/logger"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/textsource"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "editorial",
	Short:        "Editorial quality scorer",
	Long:         `Scores a news article on eight editorial criteria with an LLM and returns a normalized 0-100 evaluation.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}

func newLogger(cfg config.Config) *logger.Logger {
	log, err := logger.New(string(cfg.Mode))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	return log
}

func newPipeline(cfg config.Config, log *logger.Logger) (*evaluation.Evaluator, *textsource.Extractor) {
	client := llm.NewClient(llm.Options{
		BaseURL:       cfg.OpenRouterBaseURL,
		Timeout:       cfg.LLMTimeout,
		RatePerMinute: cfg.LLMRatePerMinute,
		Referer:       cfg.AppURL,
		Title:         cfg.AppName,
	}, log)
	ev := evaluation.NewEvaluator(client, cfg.DefaultModel, log)
	ex := textsource.NewExtractor(textsource.WithOCRHint(cfg.PDFOCRHint))
	return ev, ex
}
