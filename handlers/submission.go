// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/danielhkuo/survey-tally/auth"
	"github.com/danielhkuo/survey-tally/cliparse"
	"github.com/danielhkuo/survey-tally/hub"
	"github.com/danielhkuo/survey-tally/middleware"
	"github.com/danielhkuo/survey-tally/models"
	"github.com/danielhkuo/survey-tally/store"
	"github.com/danielhkuo/survey-tally/survey"
)

const maxBodyBytes = 64 << 10

// User-facing messages
const (
	msgMissingAnswers = "Todas as perguntas são obrigatórias."
	msgAccepted       = "Formulário recebido com sucesso!"
	msgAcceptedMemory = "Formulário recebido! As respostas estão guardadas temporariamente."
)

var (
	errInvalidJSON = errors.New("Invalid JSON")
	errInvalidForm = errors.New("Invalid form")
)

type SubmissionHandler struct {
	store   *store.Store
	catalog *survey.Catalog
	hub     *hub.Hub
	cfg     cliparse.Config
}

func NewSubmissionHandler(st *store.Store, catalog *survey.Catalog, h *hub.Hub, cfg cliparse.Config) *SubmissionHandler {
	return &SubmissionHandler{store: st, catalog: catalog, hub: h, cfg: cfg}
}

// Submit handles POST /submit (alias POST /contar)
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	fields, err := h.parseFields(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	answers, missing := h.catalog.Pick(fields)
	if len(missing) > 0 {
		slog.Info("submission rejected", "missing", missing)
		middleware.ErrorResponse(w, http.StatusBadRequest, msgMissingAnswers)
		return
	}

	agg, persisted := h.store.Update(r.Context(), func(agg *models.Aggregate) {
		agg.TotalSubmissions++
		for _, q := range models.Questions {
			opt, ok := h.catalog.Normalize(q, string(answers[q]))
			if !ok {
				// Counted in the total but not against any option
				slog.Warn("unrecognized answer", "question", q, "answer", string(answers[q]))
				continue
			}
			agg.Counts(q)[opt]++
		}
	})

	h.hub.Broadcast(agg)

	resp := models.SubmitResponse{
		Success: true,
		Message: msgAccepted,
		Storage: models.StoragePersisted,
	}
	if !persisted {
		resp.Message = msgAcceptedMemory
		resp.Storage = models.StorageMemory
	}

	slog.Info("submission accepted",
		"total", agg.TotalSubmissions,
		"storage", resp.Storage,
		"client", auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt),
	)

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// parseFields reads the answer fields from a JSON or form-encoded body.
// Only field names known to the catalog are decoded.
func (h *SubmissionHandler) parseFields(r *http.Request) (models.SubmitFields, error) {
	fields := make(models.SubmitFields)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := parseForm(r, mediaType); err != nil {
			return nil, errInvalidForm
		}
		for _, name := range h.catalog.FieldNames() {
			if v := r.PostForm.Get(name); v != "" {
				fields[name] = models.Answer(v)
			}
		}
		return fields, nil
	}

	var raw map[string]json.RawMessage
	if err := middleware.ParseJSONBody(r, &raw); err != nil {
		return nil, errInvalidJSON
	}
	for _, name := range h.catalog.FieldNames() {
		data, ok := raw[name]
		if !ok {
			continue
		}
		var v models.Answer
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, errInvalidJSON
		}
		fields[name] = v
	}
	return fields, nil
}

func parseForm(r *http.Request, mediaType string) error {
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(maxBodyBytes)
	}
	return r.ParseForm()
}
