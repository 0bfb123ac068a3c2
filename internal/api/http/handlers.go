package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/lbt00001-beep/mbainative-website-sub000/internal/audit"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/evaluation"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/report"
)

// GET /health
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// POST /api/report  body: an evaluation result as returned by /api/evaluate
func ReportHandler(maxBody int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if maxBody > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBody)
		}
		var res evaluation.Result
		if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
			writeError(w, &evaluation.InputError{Msg: "cuerpo JSON inválido", Err: err})
			return
		}
		if len(res.CriteriaDetails) == 0 {
			writeError(w, evaluation.NewInputError("la evaluación no contiene criteriaDetails"))
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="informe-editorial.txt"`)
		_, _ = w.Write([]byte(report.Text(&res)))
	}
}

type Lister interface {
	Recent(ctx context.Context, limit int) ([]audit.Record, error)
}

// GET /api/evaluations?limit=
func ListEvaluationsHandler(store Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
		list, err := store.Recent(r.Context(), limit)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
