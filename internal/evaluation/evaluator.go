// Package evaluation scores an article against the editorial rubric: it
// prompts the model, recovers and validates its JSON, asks for one repair
// when needed and normalizes whatever comes back into a complete Result.
package evaluation

import (
	"context"
	"strings"

	"github.com/lbt00001-beep/mbainative-website-sub000/internal/logger"
)

// Completer is the single LLM round-trip the pipeline depends on.
type Completer interface {
	Complete(ctx context.Context, apiKey, model, prompt string) (string, error)
}

type Request struct {
	APIKey   string
	Model    string
	Metadata Metadata
	Article  string
}

type Evaluator struct {
	llm          Completer
	defaultModel string
	log          *logger.Logger
}

func NewEvaluator(llm Completer, defaultModel string, log *logger.Logger) *Evaluator {
	if log == nil {
		log = logger.Nop()
	}
	return &Evaluator{llm: llm, defaultModel: defaultModel, log: log}
}

// Model returns the model a request will run against.
func (e *Evaluator) Model(req Request) string {
	if m := strings.TrimSpace(req.Model); m != "" {
		return m
	}
	return e.defaultModel
}

// Evaluate runs the pipeline with at most two LLM calls. The second call's
// output is accepted without re-validation; Normalize is the backstop.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (*Result, error) {
	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	article := strings.TrimSpace(req.Article)
	if article == "" {
		return nil, ErrMissingArticle
	}
	model := e.Model(req)
	log := e.log.With("model", model)

	prompt := BuildPrompt(req.Metadata, article)

	raw, err := e.llm.Complete(ctx, apiKey, model, prompt)
	if err != nil {
		return nil, err
	}
	attempts := 1
	repaired := false

	obj, perr := ExtractJSON(raw)
	switch {
	case perr != nil:
		log.Warn("llm output not parseable, requesting repair", "error", perr)
		raw2, err := e.llm.Complete(ctx, apiKey, model, BuildInvalidJSONRepairPrompt(prompt))
		if err != nil {
			return nil, err
		}
		attempts++
		obj, perr = ExtractJSON(raw2)
		if perr != nil {
			return nil, perr
		}
		repaired = true

	default:
		if errs := Validate(obj); len(errs) > 0 {
			log.Info("llm output failed validation, requesting repair", "errors", len(errs))
			raw2, err := e.llm.Complete(ctx, apiKey, model, BuildSchemaRepairPrompt(prompt, errs, raw))
			if err != nil {
				return nil, err
			}
			attempts++
			fixed, ferr := ExtractJSON(raw2)
			if ferr != nil {
				log.Warn("repair output not parseable, keeping first attempt", "error", ferr)
			} else {
				obj = fixed
				repaired = true
			}
		}
	}

	res := Normalize(obj, article)
	res.Metadata = ReconcileMetadata(req.Metadata, asMap(obj["metadataExtracted"]), article)
	res.Attempts = attempts
	res.Repaired = repaired
	log.Info("evaluation complete", "overall", res.OverallScore, "label", res.Label, "attempts", attempts)
	return &res, nil
}
