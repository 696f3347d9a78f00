package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "smp/pkg/domain-errors"
)

func (h *Handler) handleDeleteTransportProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profileID := chi.URLParam(r, "profile")

	change, err := h.service.DeleteTransportProfile(ctx, profileID)
	if err != nil {
		h.writeError(ctx, w, err, "failed to delete transport profile")
		return
	}
	if !change.IsChanged() {
		h.writeError(ctx, w, dErrors.Newf(dErrors.CodeNotFound, "transport profile %q not found", profileID), "unknown transport profile")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
