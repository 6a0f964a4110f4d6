package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Abhinavp16/TogetherHub/internal/store"
	"github.com/Abhinavp16/TogetherHub/pkg/auth"
)

type DocsAPI struct{ DB *store.Postgres }

type createDocReq struct {
	Title    string `json:"title"`
	Type     string `json:"type,omitempty"`
	Language string `json:"language,omitempty"`
}

type updateDocReq struct {
	Title    string `json:"title,omitempty"`
	Content  string `json:"content"`
	Language string `json:"language,omitempty"`
}

type shareDocReq struct {
	UserID string `json:"userId"`
}

type docResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Type         string    `json:"type"`
	Language     string    `json:"language,omitempty"`
	Owner        string    `json:"owner"`
	LastModified time.Time `json:"lastModified"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func docDTO(d store.Doc) docResponse {
	return docResponse{
		ID: d.ID, Title: d.Title, Content: d.Content, Type: d.Type,
		Language: d.Language, Owner: d.OwnerID,
		LastModified: d.LastModified, UpdatedAt: d.UpdatedAt,
	}
}

// Create handles new doc creation for the authenticated user.
func (a *DocsAPI) Create(w http.ResponseWriter, r *http.Request) {
	var req createDocReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	uid := auth.UserID(r.Context())
	d, err := a.DB.CreateDoc(r.Context(), req.Title, req.Type, req.Language, uid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, docDTO(d))
}

// List returns docs the caller owns or collaborates on
func (a *DocsAPI) List(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	docs, err := a.DB.ListDocsFor(r.Context(), uid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]docResponse, 0, len(docs))
	for _, d := range docs {
		resp = append(resp, docDTO(d))
	}
	writeJSON(w, resp)
}

// Get returns one doc the caller can access
func (a *DocsAPI) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}

	uid := auth.UserID(r.Context())
	d, err := a.DB.GetDocFor(r.Context(), id, uid)
	if err != nil {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}
	writeJSON(w, docDTO(d))
}

// Update writes title/content/language for owner or collaborator
func (a *DocsAPI) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req updateDocReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	uid := auth.UserID(r.Context())
	d, err := a.DB.UpdateDocFor(r.Context(), id, uid, req.Title, req.Content, req.Language)
	if err != nil {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}
	writeJSON(w, docDTO(d))
}

// Delete removes a doc. Owner only.
func (a *DocsAPI) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	uid := auth.UserID(r.Context())

	if err := a.DB.DeleteDoc(r.Context(), id, uid); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "document not found or unauthorized", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"message": "document deleted"})
}

// Share grants another user collaborator access. Owner only.
func (a *DocsAPI) Share(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req shareDocReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	uid := auth.UserID(r.Context())
	d, err := a.DB.GetDocFor(r.Context(), id, uid)
	if err != nil || d.OwnerID != uid {
		http.Error(w, "document not found or unauthorized", http.StatusNotFound)
		return
	}
	if err := a.DB.AddCollaborator(r.Context(), id, req.UserID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"message": "collaborator added"})
}
