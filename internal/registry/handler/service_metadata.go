package handler

import (
	"net/http"

	"smp/internal/registry/models"
	"smp/pkg/platform/httputil"
	"smp/pkg/requestcontext"
)

// handlePutServiceMetadata stores service information or a redirect for the
// document type, whichever the body carries.
func (h *Handler) handlePutServiceMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	user := requestcontext.UserID(ctx)

	pid, ok := h.participant(w, r)
	if !ok {
		return
	}
	docType, ok := h.documentType(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ServiceMetadataRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	var change models.Change
	if req.Redirect != nil {
		redirect, err := models.NewRedirect(pid, docType, req.Redirect.TargetHref,
			req.Redirect.SubjectUniqueIdentifier, req.Redirect.Certificate, req.Extensions)
		if err != nil {
			h.writeError(ctx, w, err, "invalid redirect")
			return
		}
		if change, err = h.service.SaveRedirect(ctx, user, redirect); err != nil {
			h.writeError(ctx, w, err, "failed to save redirect")
			return
		}
	} else {
		info, err := models.NewServiceInformation(pid, docType, req.Processes, req.Extensions)
		if err != nil {
			h.writeError(ctx, w, err, "invalid service information")
			return
		}
		if change, err = h.service.SaveServiceInformation(ctx, user, info); err != nil {
			h.writeError(ctx, w, err, "failed to save service information")
			return
		}
	}
	httputil.WriteJSON(w, http.StatusOK, ChangeResponse{Changed: change.IsChanged()})
}

func (h *Handler) handleDeleteServiceMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := requestcontext.UserID(ctx)

	pid, ok := h.participant(w, r)
	if !ok {
		return
	}
	docType, ok := h.documentType(w, r)
	if !ok {
		return
	}
	if _, err := h.service.DeleteServiceMetadata(ctx, user, pid, docType); err != nil {
		h.writeError(ctx, w, err, "failed to delete service metadata")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
