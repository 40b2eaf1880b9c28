package project

import (
	"Wellcore/internal/repo"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	fluids "Wellcore/internal/calc/fluids"
	geometry "Wellcore/internal/calc/geometry"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Repo repo.Repository
}

type createRequest struct {
	Name string `json:"name"`
}

func userID(r *http.Request) (int, bool) {
	id, ok := r.Context().Value("userID").(int)
	return id, ok && id != 0
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "Project name required", http.StatusBadRequest)
		return
	}

	id, err := h.Repo.CreateProject(r.Context(), uid, req.Name)
	if err != nil {
		zap.L().Error("create project", zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"id": id})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	projects, err := h.Repo.ListProjects(r.Context(), uid)
	if err != nil {
		zap.L().Error("list projects", zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(projects)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	p, err := h.Repo.GetProject(r.Context(), uid, mux.Vars(r)["id"])
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		zap.L().Error("load project", zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// Save replaces the whole aggregate and echoes advisory geometry and fluid
// warnings so the client can surface them next to the editor.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var p repo.Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	p.ID = mux.Vars(r)["id"]
	p.OwnerID = uid

	if err := h.Repo.SaveProject(r.Context(), p); errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	} else if err != nil {
		zap.L().Error("save project", zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		GeometryWarnings []geometry.Warning `json:"geometry_warnings,omitempty"`
		FluidWarnings    []string           `json:"fluid_warnings,omitempty"`
	}{
		GeometryWarnings: geometry.Validate(p.Strings, p.Annulus),
		FluidWarnings:    fluids.Validate(p.Layers),
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.Repo.DeleteProject(r.Context(), uid, mux.Vars(r)["id"]); err != nil {
		zap.L().Error("delete project", zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
