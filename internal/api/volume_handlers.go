package api

import (
	"net/http"

	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/volume"

	"github.com/opentocoder/docker-panel/internal/engine"
)

type volumeInfo struct {
	Name       string            `json:"name"`
	Driver     string            `json:"driver"`
	Mountpoint string            `json:"mountpoint"`
	Created    string            `json:"created"`
	Labels     map[string]string `json:"labels,omitempty"`
}

func (s *Server) handleVolumeList(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	resp, err := s.engine.VolumeList(r.Context(), volume.ListOptions{})
	if err != nil {
		s.writeEngineError(w, "volume", err)
		return
	}

	infos := make([]volumeInfo, 0, len(resp.Volumes))
	for _, v := range resp.Volumes {
		if v == nil {
			continue
		}
		infos = append(infos, volumeInfo{
			Name:       v.Name,
			Driver:     v.Driver,
			Mountpoint: v.Mountpoint,
			Created:    v.CreatedAt,
			Labels:     v.Labels,
		})
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"volumes":  infos,
		"warnings": resp.Warnings,
	})
}

type volumeCreateRequest struct {
	Name   string `json:"name"`
	Driver string `json:"driver"`
}

func (s *Server) handleVolumeCreate(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	var req volumeCreateRequest
	if err := BindJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		WriteError(w, http.StatusBadRequest, "name is required")
		return
	}

	v, err := s.engine.VolumeCreate(r.Context(), volume.CreateOptions{
		Name:   req.Name,
		Driver: req.Driver,
	})
	if err != nil {
		s.writeEngineError(w, "volume", err)
		return
	}

	s.logger.Info("volume created", "name", v.Name)
	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"volume": volumeInfo{
			Name:       v.Name,
			Driver:     v.Driver,
			Mountpoint: v.Mountpoint,
			Created:    v.CreatedAt,
			Labels:     v.Labels,
		},
	})
}

func (s *Server) handleVolumeRemove(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}
	force := r.URL.Query().Get("force") == "true"
	err := s.engine.VolumeRemove(r.Context(), r.PathValue("name"), force)
	s.writeEngineResult(w, "volume", "volume removed", err)
}

func (s *Server) handleVolumePrune(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	report, err := s.engine.VolumesPrune(r.Context(), filters.NewArgs())
	if err != nil {
		s.writeEngineError(w, "volume", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"deleted":        len(report.VolumesDeleted),
		"spaceReclaimed": engine.FormatBytes(int64(report.SpaceReclaimed)),
	})
}
