package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/kalem/models"
	"github.com/akinalp/kalem/pkg"
	"github.com/akinalp/kalem/services"
)

// ReactionHandler, like/dislike endpoint'leri.
//
// Reaction API'sinin tek yazma kapısı POST /api/reactions'tır (toggle).
// id üzerinden PUT/PATCH/DELETE yoktur — mutasyon her zaman
// (content_type, object_id, user) üçlüsüyle anahtarlanır ve bu
// endpoint'ler koşulsuz 405 döner.
type ReactionHandler struct {
	reactionService services.ReactionService
}

// NewReactionHandler, constructor.
func NewReactionHandler(reactionService services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// Toggle godoc
// POST /api/reactions
// Body: { "content_type": "post"|"comment", "object_id": "...", "is_like": bool }
//
// Sonuç status code'a kodlanır:
//   - 201: yeni reaction eklendi (body: reaction)
//   - 200: mevcut reaction'ın yönü değişti (body: reaction, id/created_at aynı)
//   - 204: reaction kaldırıldı (body yok)
func (h *ReactionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.ToggleReactionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.reactionService.Toggle(r.Context(), user, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	switch result.Outcome {
	case models.ToggleCreated:
		pkg.JSON(w, http.StatusCreated, result.Reaction)
	case models.ToggleUpdated:
		pkg.JSON(w, http.StatusOK, result.Reaction)
	case models.ToggleRemoved:
		pkg.NoContent(w)
	default:
		pkg.Error(w, pkg.ErrInternal)
	}
}

// List godoc
// GET /api/reactions?content_type=&object_id=
// Hedefin tüm reaction'ları, user bilgisiyle, eskiden yeniye.
func (h *ReactionHandler) List(w http.ResponseWriter, r *http.Request) {
	contentType := r.URL.Query().Get("content_type")
	objectID := r.URL.Query().Get("object_id")

	reactions, err := h.reactionService.List(r.Context(), contentType, objectID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, reactions)
}

// MethodNotAllowed godoc
// PUT/PATCH/DELETE /api/reactions/{id}
//
// Koşulsuz 405 — auth kontrolünden bile önce. Reaction id'si yalnızca
// response'larda görünen bir kimliktir, mutasyon anahtarı değildir.
// "Beğeniyi geri al" işlemi aynı body ile tekrar POST'tur.
func (h *ReactionHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "POST")
	pkg.ErrorWithMessage(w, http.StatusMethodNotAllowed, "reactions can only be toggled via POST /api/reactions")
}
