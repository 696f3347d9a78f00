package handler

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	dErrors "smp/pkg/domain-errors"
	"smp/pkg/platform/httputil"
	"smp/pkg/requestcontext"
)

// handlePutServiceGroup creates the group, or updates its extensions when
// it already exists.
func (h *Handler) handlePutServiceGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	user := requestcontext.UserID(ctx)

	pid, ok := h.participant(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ServiceGroupRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	op, err := h.service.CreateServiceGroup(ctx, user, pid, req.Extensions)
	if dErrors.HasCode(err, dErrors.CodeAlreadyExists) {
		change, err := h.service.UpdateServiceGroup(ctx, user, pid, req.Extensions)
		if err != nil {
			h.writeError(ctx, w, err, "failed to update service group")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, ServiceGroupResponse{
			ParticipantID: pid.URI(),
			Changed:       change.IsChanged(),
		})
		return
	}
	if err != nil {
		h.writeError(ctx, w, err, "failed to create service group")
		return
	}

	rec := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
	defer h.complete(ctx, rec, op)
	httputil.WriteJSON(rec, http.StatusCreated, ServiceGroupResponse{
		ParticipantID: pid.URI(),
		OperationID:   op.ID().String(),
		Changed:       true,
	})
}

func (h *Handler) handleDeleteServiceGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := requestcontext.UserID(ctx)

	pid, ok := h.participant(w, r)
	if !ok {
		return
	}
	op, err := h.service.DeleteServiceGroup(ctx, user, pid)
	if err != nil {
		h.writeError(ctx, w, err, "failed to delete service group")
		return
	}

	rec := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
	defer h.complete(ctx, rec, op)
	rec.WriteHeader(http.StatusNoContent)
}
