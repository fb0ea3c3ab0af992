package http

import (
	"net/http"

	"github.com/LauchlanT/brickshowcase/internal/showcase/service"
	"github.com/LauchlanT/brickshowcase/pkg/httpx"
)

// MocHandler serves POST /api/moc: the dispatcher for MOC and comment
// operations, with the same envelope contract as /api/user.
type MocHandler struct {
	Content *service.ContentService
}

type mocOp struct {
	required []string
	missing  string
	handle   func(h *MocHandler, w http.ResponseWriter, r *http.Request, caller string, req request)
}

var mocOps = map[string]mocOp{
	"createMoc": {
		required: []string{"title", "text", "thumb", "privacy", "filter"},
		missing:  "MOC title, text, thumb, privacy, and filter must be sent",
		handle:   (*MocHandler).createMoc,
	},
	"editMoc": {
		required: []string{"mocId", "title", "text", "thumb", "privacy", "filter"},
		missing:  "mocId, title, text, thumb, privacy, and filter must be sent",
		handle:   (*MocHandler).editMoc,
	},
	"deleteMoc": {
		required: []string{"mocId", "password"},
		missing:  "mocId and password must be sent",
		handle:   (*MocHandler).deleteMoc,
	},
	"likeMoc": {
		required: []string{"mocId"},
		missing:  "The mocId of the MOC must be sent",
		handle:   (*MocHandler).likeMoc,
	},
	"unlikeMoc": {
		required: []string{"mocId"},
		missing:  "The mocId of the MOC must be sent",
		handle:   (*MocHandler).unlikeMoc,
	},
	"treasureMoc": {
		required: []string{"mocId"},
		missing:  "The mocId of the MOC must be sent",
		handle:   (*MocHandler).treasureMoc,
	},
	"untreasureMoc": {
		required: []string{"mocId"},
		missing:  "The mocId of the MOC must be sent",
		handle:   (*MocHandler).untreasureMoc,
	},
	"addComment": {
		required: []string{"mocId", "text"},
		missing:  "mocId and comment text must be sent",
		handle:   (*MocHandler).addComment,
	},
	"editComment": {
		required: []string{"commentId", "text"},
		missing:  "The commentId and text must be sent",
		handle:   (*MocHandler).editComment,
	},
	"deleteComment": {
		required: []string{"commentId"},
		missing:  "The commentId of the comment to delete must be sent",
		handle:   (*MocHandler).deleteComment,
	},
}

// ServeHTTP godoc
//
//	@Summary		MOC Operations Endpoint
//	@Description	Single dispatcher for MOC and comment operations. Same contract as /api/user:
//	@Description	one JSON object with an "endpoint" field, answered with a {result, error}
//	@Description	envelope and HTTP 200 for every domain outcome.
//	@Tags			MOC
//	@Accept			json
//	@Produce		json
//	@Param			body	body		object	true	"Operation request with endpoint field"
//	@Success		200		{object}	Envelope
//	@Router			/api/moc [post].
func (h *MocHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	op, ok := mocOps[req.str("endpoint")]
	if !ok {
		writeError(w, "Requested endpoint does not exist")
		return
	}
	for _, field := range op.required {
		if !req.has(field) {
			writeError(w, op.missing)
			return
		}
	}
	op.handle(h, w, r, httpx.CallerID(r.Context()), req)
}

func (h *MocHandler) createMoc(w http.ResponseWriter, r *http.Request, caller string, req request) {
	link, err := h.Content.CreateMoc(r.Context(), caller,
		req.str("title"), req.str("text"), req.str("thumb"), req.str("filter"), req.boolean("privacy"))
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, link)
}

func (h *MocHandler) editMoc(w http.ResponseWriter, r *http.Request, caller string, req request) {
	err := h.Content.EditMoc(r.Context(), caller, req.str("mocId"),
		req.str("title"), req.str("text"), req.str("thumb"), req.str("filter"), req.boolean("privacy"))
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, "MOC successfully updated!")
}

func (h *MocHandler) deleteMoc(w http.ResponseWriter, r *http.Request, caller string, req request) {
	if err := h.Content.DeleteMoc(r.Context(), caller, req.str("mocId"), req.str("password")); err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, "MOC successfully deleted!")
}

func (h *MocHandler) likeMoc(w http.ResponseWriter, r *http.Request, caller string, req request) {
	if err := h.Content.LikeMoc(r.Context(), caller, req.str("mocId")); err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, "Like added!")
}

func (h *MocHandler) unlikeMoc(w http.ResponseWriter, r *http.Request, caller string, req request) {
	if err := h.Content.UnlikeMoc(r.Context(), caller, req.str("mocId")); err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, "Like removed!")
}

func (h *MocHandler) treasureMoc(w http.ResponseWriter, r *http.Request, caller string, req request) {
	if err := h.Content.TreasureMoc(r.Context(), caller, req.str("mocId")); err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, "MOC treasured!")
}

func (h *MocHandler) untreasureMoc(w http.ResponseWriter, r *http.Request, caller string, req request) {
	if err := h.Content.UntreasureMoc(r.Context(), caller, req.str("mocId")); err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, "MOC untreasured!")
}

func (h *MocHandler) addComment(w http.ResponseWriter, r *http.Request, caller string, req request) {
	if err := h.Content.AddComment(r.Context(), caller, req.str("mocId"), req.str("text")); err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, "Comment added!")
}

func (h *MocHandler) editComment(w http.ResponseWriter, r *http.Request, caller string, req request) {
	if err := h.Content.EditComment(r.Context(), caller, req.str("commentId"), req.str("text")); err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, "Comment updated!")
}

func (h *MocHandler) deleteComment(w http.ResponseWriter, r *http.Request, caller string, req request) {
	if err := h.Content.DeleteComment(r.Context(), caller, req.str("commentId")); err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, "Comment successfully deleted!")
}
