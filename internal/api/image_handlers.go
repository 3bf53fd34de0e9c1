package api

import (
	"io"
	"net/http"

	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"

	"github.com/opentocoder/docker-panel/internal/engine"
)

type imageInfo struct {
	ID            string   `json:"id"`
	Tags          []string `json:"tags"`
	Created       int64    `json:"created"`
	Size          int64    `json:"size"`
	SizeFormatted string   `json:"sizeFormatted"`
}

func (s *Server) handleImageList(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAuth(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	images, err := s.engine.ImageList(r.Context(), image.ListOptions{All: false})
	if err != nil {
		s.writeEngineError(w, "image", err)
		return
	}

	var totalSize int64
	infos := make([]imageInfo, 0, len(images))
	for _, img := range images {
		totalSize += img.Size
		tags := img.RepoTags
		if tags == nil {
			tags = []string{}
		}
		infos = append(infos, imageInfo{
			ID:            img.ID,
			Tags:          tags,
			Created:       img.Created,
			Size:          img.Size,
			SizeFormatted: engine.FormatBytes(img.Size),
		})
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"images":             infos,
		"totalSize":          totalSize,
		"totalSizeFormatted": engine.FormatBytes(totalSize),
	})
}

func (s *Server) handleImageRemove(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	force := r.URL.Query().Get("force") == "true"
	deleted, err := s.engine.ImageRemove(r.Context(), r.PathValue("id"), image.RemoveOptions{Force: force})
	if err != nil {
		s.writeEngineError(w, "image", err)
		return
	}

	untagged := 0
	removed := 0
	for _, d := range deleted {
		if d.Untagged != "" {
			untagged++
		}
		if d.Deleted != "" {
			removed++
		}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "image removed",
		"deleted":  removed,
		"untagged": untagged,
	})
}

func (s *Server) handleImagePrune(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	report, err := s.engine.ImagesPrune(r.Context(), filters.NewArgs())
	if err != nil {
		s.writeEngineError(w, "image", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"deleted":        len(report.ImagesDeleted),
		"spaceReclaimed": engine.FormatBytes(int64(report.SpaceReclaimed)),
	})
}

type pullRequest struct {
	Image string `json:"image"`
}

func (s *Server) handleImagePull(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	var req pullRequest
	if err := BindJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Image == "" {
		WriteError(w, http.StatusBadRequest, "image is required")
		return
	}

	rc, err := s.engine.ImagePull(r.Context(), req.Image, image.PullOptions{})
	if err != nil {
		s.writeEngineError(w, "image", err)
		return
	}
	defer rc.Close()

	// The pull only completes once the progress stream is drained.
	if _, err := io.Copy(io.Discard, rc); err != nil {
		s.writeEngineError(w, "image", err)
		return
	}

	s.logger.Info("image pulled", "image", req.Image)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "pulled " + req.Image,
	})
}
