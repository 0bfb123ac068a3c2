package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lbt00001-beep/mbainative-website-sub000/internal/config"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/evaluation"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/report"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/textsource"
)

var (
	flagModel   string
	flagTitle   string
	flagOutlet  string
	flagAuthor  string
	flagDate    string
	flagSection string
	flagJSON    bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [file]",
	Short: "Evaluate a .txt, .md or .pdf file (stdin when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		log := newLogger(cfg)
		defer log.Sync()

		in, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		ev, ex := newPipeline(cfg, log)
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		art, err := ex.Extract(ctx, in)
		if err != nil {
			return err
		}
		if art.OCRHint {
			return errors.New("el PDF no contiene texto extraíble; aplique OCR y evalúe el texto resultante")
		}

		res, err := ev.Evaluate(ctx, evaluation.Request{
			APIKey: cfg.OpenRouterAPIKey,
			Model:  flagModel,
			Metadata: evaluation.Metadata{
				Title:   flagTitle,
				Outlet:  flagOutlet,
				Author:  flagAuthor,
				Date:    flagDate,
				Section: flagSection,
			},
			Article: art.Text,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if flagJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		_, err = fmt.Fprint(out, report.Styled(res))
		return err
	},
}

func init() {
	f := evaluateCmd.Flags()
	f.StringVar(&flagModel, "model", "", "Model id (default from LLM_DEFAULT_MODEL)")
	f.StringVar(&flagTitle, "title", "", "Article title")
	f.StringVar(&flagOutlet, "outlet", "", "Publishing outlet")
	f.StringVar(&flagAuthor, "author", "", "Author")
	f.StringVar(&flagDate, "date", "", "Publication date")
	f.StringVar(&flagSection, "section", "", "Section")
	f.BoolVar(&flagJSON, "json", false, "Output the evaluation as JSON")
}

// readInput loads the article from a file or stdin. PDFs go through the same
// base64 path the HTTP API uses.
func readInput(stdin io.Reader, args []string) (textsource.Input, error) {
	if len(args) == 0 {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return textsource.Input{}, fmt.Errorf("read stdin: %w", err)
		}
		return textsource.Input{ArticleText: string(b)}, nil
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return textsource.Input{}, err
	}
	if strings.EqualFold(filepath.Ext(args[0]), ".pdf") {
		return textsource.Input{PDFBase64: base64.StdEncoding.EncodeToString(b)}, nil
	}
	return textsource.Input{ArticleText: string(b)}, nil
}
