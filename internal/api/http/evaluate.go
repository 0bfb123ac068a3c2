package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/lbt00001-beep/mbainative-website-sub000/internal/audit"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/evaluation"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/logger"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/textsource"
)

// Recorder persists finished evaluations. Optional.
type Recorder interface {
	Append(ctx context.Context, rec audit.Record) (audit.Record, error)
}

type EvaluateDeps struct {
	Evaluator    *evaluation.Evaluator
	Extractor    *textsource.Extractor
	Audit        Recorder
	Log          *logger.Logger
	ServerAPIKey string
	MaxBodyBytes int64
}

type evaluateRequest struct {
	APIKey      string `json:"apiKey"`
	Model       string `json:"model"`
	Title       string `json:"title"`
	Outlet      string `json:"outlet"`
	Author      string `json:"author"`
	Date        string `json:"date"`
	Section     string `json:"section"`
	ArticleText string `json:"articleText"`
	PDFBase64   string `json:"pdfBase64"`
}

type evaluateResponse struct {
	Source              string `json:"source"`
	ModelUsed           string `json:"modelUsed"`
	ExtractedTextLength int    `json:"extractedTextLength"`
	OCRHint             bool   `json:"ocrHint,omitempty"`
	*evaluation.Result
}

// POST /api/evaluate
func EvaluateHandler(d EvaluateDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.MaxBodyBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, d.MaxBodyBytes)
		}
		var req evaluateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, &evaluation.InputError{Msg: "cuerpo JSON inválido", Err: err})
			return
		}

		art, err := d.Extractor.Extract(r.Context(), textsource.Input{
			ArticleText: req.ArticleText,
			PDFBase64:   req.PDFBase64,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		apiKey := strings.TrimSpace(req.APIKey)
		if apiKey == "" {
			apiKey = d.ServerAPIKey
		}
		evReq := evaluation.Request{
			APIKey: apiKey,
			Model:  req.Model,
			Metadata: evaluation.Metadata{
				Title:   strings.TrimSpace(req.Title),
				Outlet:  strings.TrimSpace(req.Outlet),
				Author:  strings.TrimSpace(req.Author),
				Date:    strings.TrimSpace(req.Date),
				Section: strings.TrimSpace(req.Section),
			},
			Article: art.Text,
		}
		resp := evaluateResponse{
			Source:              art.Source,
			ModelUsed:           d.Evaluator.Model(evReq),
			ExtractedTextLength: utf8.RuneCountInString(art.Text),
			OCRHint:             art.OCRHint,
		}

		// scanned PDF: the client has to OCR it and resubmit as text
		if art.Source == textsource.SourcePDFOCRNeeded {
			writeJSON(w, http.StatusOK, resp)
			return
		}

		res, err := d.Evaluator.Evaluate(r.Context(), evReq)
		if err != nil {
			d.Log.Warn("evaluation failed", "source", art.Source, "model", resp.ModelUsed, "error", err)
			writeError(w, err)
			return
		}
		resp.Result = res

		if d.Audit != nil {
			rec := audit.FromResult(res, resp.ModelUsed, art.Source, resp.ExtractedTextLength)
			if _, err := d.Audit.Append(r.Context(), rec); err != nil {
				d.Log.Error("audit append failed", "error", err)
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
