package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Abhinavp16/TogetherHub/internal/store"
	"github.com/Abhinavp16/TogetherHub/internal/ws"
	"github.com/Abhinavp16/TogetherHub/pkg/auth"
)

// RoomsAPI exposes room CRUD plus the live presence view served by the
// realtime coordinator.
type RoomsAPI struct {
	DB  *store.Postgres
	Hub *ws.Hub
}

type createRoomReq struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Private     bool   `json:"private,omitempty"`
}

type roomResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	Private     bool      `json:"private"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
}

type memberDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

func roomDTO(r store.Room) roomResponse {
	return roomResponse{
		ID: r.ID, Name: r.Name, Description: r.Description, Type: r.Type,
		Private: r.Private, Owner: r.OwnerID, CreatedAt: r.CreatedAt,
	}
}

var validRoomTypes = map[string]bool{"": true, "document": true, "code": true, "whiteboard": true}

// Create makes a room owned by the caller
func (a *RoomsAPI) Create(w http.ResponseWriter, r *http.Request) {
	var req createRoomReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if !validRoomTypes[req.Type] {
		http.Error(w, "invalid room type", http.StatusBadRequest)
		return
	}

	uid := auth.UserID(r.Context())
	room, err := a.DB.CreateRoom(r.Context(), req.Name, req.Description, req.Type, req.Private, uid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, roomDTO(room))
}

// List returns all active rooms
func (a *RoomsAPI) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := a.DB.ListRooms(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	resp := make([]roomResponse, 0, len(rooms))
	for _, rm := range rooms {
		resp = append(resp, roomDTO(rm))
	}
	writeJSON(w, resp)
}

// Get returns one room
func (a *RoomsAPI) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	room, err := a.DB.GetRoom(r.Context(), id)
	if err != nil {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	writeJSON(w, roomDTO(room))
}

// Join enrolls the caller as a member
func (a *RoomsAPI) Join(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := a.DB.GetRoom(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	uid := auth.UserID(r.Context())
	if err := a.DB.JoinRoom(r.Context(), id, uid); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"message": "joined room"})
}

// Leave removes the caller's enrollment
func (a *RoomsAPI) Leave(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	uid := auth.UserID(r.Context())
	if err := a.DB.LeaveRoom(r.Context(), id, uid); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"message": "left room"})
}

// Members lists enrolled members (persistent membership, not live presence)
func (a *RoomsAPI) Members(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	members, err := a.DB.RoomMembers(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	resp := make([]memberDTO, 0, len(members))
	for _, m := range members {
		resp = append(resp, memberDTO{ID: m.ID, Name: m.Name, Email: m.Email, Avatar: m.Avatar})
	}
	writeJSON(w, resp)
}

// Presence returns who is connected to the room right now.
func (a *RoomsAPI) Presence(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	users := a.Hub.Coordinator().DistinctUsers(id)
	if users == nil {
		users = []ws.User{}
	}
	writeJSON(w, users)
}
