package handler

import (
	"net/http"

	"smp/internal/registry/models"
	"smp/pkg/platform/httputil"
	"smp/pkg/requestcontext"
)

func (h *Handler) handlePutBusinessCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	user := requestcontext.UserID(ctx)

	pid, ok := h.participant(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[BusinessCardRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	card, err := models.NewBusinessCard(pid, req.Entities)
	if err != nil {
		h.writeError(ctx, w, err, "invalid business card")
		return
	}
	change, err := h.service.SaveBusinessCard(ctx, user, card)
	if err != nil {
		h.writeError(ctx, w, err, "failed to save business card")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ChangeResponse{Changed: change.IsChanged()})
}

func (h *Handler) handleDeleteBusinessCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := requestcontext.UserID(ctx)

	pid, ok := h.participant(w, r)
	if !ok {
		return
	}
	if _, err := h.service.DeleteBusinessCard(ctx, user, pid); err != nil {
		h.writeError(ctx, w, err, "failed to delete business card")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
