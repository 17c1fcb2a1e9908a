package api

import (
	"net/http"
	"sort"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/httpx"
	"github.com/dmitrijs2005/jobboard/internal/server/validation"
)

// LogEntry is a log line reported by a client application.
type LogEntry struct {
	Level   string         `json:"level" validate:"required"`
	Message string         `json:"message" validate:"required"`
	Meta    map[string]any `json:"meta"`
}

// IngestLog writes a client-reported entry to the server log at the
// requested level.
func (h *Handler) IngestLog(w http.ResponseWriter, r *http.Request) {
	var entry LogEntry
	if err := decodeJSON(w, r, &entry); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := validation.Struct(entry); err != nil {
		h.fail(w, r, err)
		return
	}

	level, err := logging.ParseLevel(entry.Level)
	if err != nil {
		h.fail(w, r, common.NewError(common.ErrorValidation, "unknown log level"))
		return
	}

	logging.Log(r.Context(), h.logger, level, entry.Message, metaArgs(entry.Meta)...)
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// metaArgs flattens meta into sorted key/value pairs tagged as client
// supplied.
func metaArgs(meta map[string]any) []any {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, 2+2*len(keys))
	args = append(args, "source", "client")
	for _, k := range keys {
		args = append(args, "meta."+k, meta[k])
	}
	return args
}
