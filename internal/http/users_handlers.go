package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/Abhinavp16/TogetherHub/internal/store"
	"github.com/Abhinavp16/TogetherHub/pkg/auth"
)

type UsersAPI struct{ DB *store.Postgres }

type updateProfileReq struct {
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// List returns the user directory (id, name, email, avatar)
func (a *UsersAPI) List(w http.ResponseWriter, r *http.Request) {
	users, err := a.DB.ListUsers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	resp := make([]authUserDTO, 0, len(users))
	for _, u := range users {
		resp = append(resp, authUserDTO{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar})
	}
	writeJSON(w, resp)
}

// Profile returns the caller's profile
func (a *UsersAPI) Profile(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	u, err := a.DB.GetUser(r.Context(), uid)
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, authUserDTO{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar})
}

// UpdateProfile changes name and/or avatar. Other fields are rejected
// by simply not being decodable into the request shape.
func (a *UsersAPI) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	uid := auth.UserID(r.Context())
	u, err := a.DB.UpdateProfile(r.Context(), uid, req.Name, req.Avatar)
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, authUserDTO{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar})
}
