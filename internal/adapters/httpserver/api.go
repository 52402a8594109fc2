package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/phenrril/brainbattle/internal/adapters/export/xlsx"
	"github.com/phenrril/brainbattle/internal/domain"
)

const (
	maxWaitlistBody = 16 << 10
	genericError    = "Something went wrong. Please try again."
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (s *Server) apiWaitlist(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email   any `json:"email"`
		Mission any `json:"mission"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxWaitlistBody)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "Invalid request body"})
		return
	}
	// Non-string values count as missing.
	email, _ := in.Email.(string)
	mission, _ := in.Mission.(string)

	err := s.waitlist.Join(r.Context(), email, mission)
	if ve, ok := domain.IsValidation(err); ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": ve.Message})
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("waitlist")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": genericError})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleWaitlistExport(w http.ResponseWriter, r *http.Request) {
	if s.adminKey == "" || !s.waitlist.Enabled() {
		s.notFound(w, r)
		return
	}
	if !secureCompare(r.Header.Get("X-Admin-Key"), s.adminKey) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "error": "unauthorized"})
		return
	}
	list, err := s.waitlist.List(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("waitlist export")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": genericError})
		return
	}
	var buf bytes.Buffer
	if err := xlsx.WriteWaitlist(&buf, list); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("waitlist export")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": genericError})
		return
	}
	name := "waitlist-" + time.Now().UTC().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	_, _ = w.Write(buf.Bytes())
}

func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := 0; i < len(a); i++ {
		v |= a[i] ^ b[i]
	}
	return v == 0
}

