package api

import (
	"net/http"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"

	"github.com/opentocoder/docker-panel/internal/engine"
)

func (s *Server) handleSystemStats(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAuth(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	ctx := r.Context()

	containers, err := s.engine.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		s.writeEngineError(w, "container", err)
		return
	}
	images, err := s.engine.ImageList(ctx, image.ListOptions{})
	if err != nil {
		s.writeEngineError(w, "image", err)
		return
	}
	networks, err := s.engine.NetworkList(ctx, network.ListOptions{})
	if err != nil {
		s.writeEngineError(w, "network", err)
		return
	}
	volumes, err := s.engine.VolumeList(ctx, volume.ListOptions{})
	if err != nil {
		s.writeEngineError(w, "volume", err)
		return
	}

	running := 0
	for _, c := range containers {
		if c.State == "running" {
			running++
		}
	}
	var imageSize int64
	for _, img := range images {
		imageSize += img.Size
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"containers":         len(containers),
		"containersRunning":  running,
		"images":             len(images),
		"imageSize":          imageSize,
		"imageSizeFormatted": engine.FormatBytes(imageSize),
		"networks":           len(networks),
		"volumes":            len(volumes.Volumes),
	})
}

func (s *Server) handleSystemInfo(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAuth(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	info, err := s.engine.Info(r.Context())
	if err != nil {
		s.writeEngineError(w, "engine", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version":           info.ServerVersion,
		"os":                info.OperatingSystem,
		"architecture":      info.Architecture,
		"kernelVersion":     info.KernelVersion,
		"cpus":              info.NCPU,
		"memory":            info.MemTotal,
		"memoryFormatted":   engine.FormatBytes(info.MemTotal),
		"containers":        info.Containers,
		"containersRunning": info.ContainersRunning,
		"containersPaused":  info.ContainersPaused,
		"containersStopped": info.ContainersStopped,
		"images":            info.Images,
	})
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	v, err := s.engine.ServerVersion(r.Context())
	if err != nil {
		s.logger.Error("engine ping failed", "error", err)
		WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "engine unavailable",
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"version": v.Version,
	})
}
