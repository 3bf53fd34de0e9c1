package api

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"

	"github.com/opentocoder/docker-panel/internal/engine"
)

type portInfo struct {
	IP          string `json:"ip,omitempty"`
	PrivatePort uint16 `json:"privatePort"`
	PublicPort  uint16 `json:"publicPort,omitempty"`
	Type        string `json:"type"`
}

type containerInfo struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Image   string     `json:"image"`
	State   string     `json:"state"`
	Status  string     `json:"status"`
	Created int64      `json:"created"`
	Ports   []portInfo `json:"ports"`
	Project string     `json:"project,omitempty"`
}

func newContainerInfo(c container.Summary) containerInfo {
	ports := make([]portInfo, 0, len(c.Ports))
	for _, p := range c.Ports {
		ports = append(ports, portInfo{
			IP:          p.IP,
			PrivatePort: p.PrivatePort,
			PublicPort:  p.PublicPort,
			Type:        p.Type,
		})
	}
	return containerInfo{
		ID:      c.ID,
		Name:    engine.ContainerName(c),
		Image:   c.Image,
		State:   string(c.State),
		Status:  c.Status,
		Created: c.Created,
		Ports:   ports,
		Project: c.Labels[engine.ComposeProjectLabel],
	}
}

func (s *Server) handleContainerList(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	q := r.URL.Query()
	all := q.Get("all") == "true"

	containers, err := s.engine.ContainerList(r.Context(), container.ListOptions{All: all})
	if err != nil {
		s.writeEngineError(w, "container", err)
		return
	}

	infos := make([]containerInfo, 0, len(containers))
	for _, c := range containers {
		infos = append(infos, newContainerInfo(c))
	}
	total := len(infos)

	// Optional window over the full list
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil && offset > 0 {
		if offset > len(infos) {
			offset = len(infos)
		}
		infos = infos[offset:]
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit >= 0 && limit < len(infos) {
		infos = infos[:limit]
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"containers": infos,
		"total":      total,
	})
}

func (s *Server) handleContainerInspect(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	info, err := s.engine.ContainerInspect(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeEngineError(w, "container", err)
		return
	}

	resp := map[string]interface{}{
		"id":      info.ID,
		"name":    strings.TrimPrefix(info.Name, "/"),
		"created": info.Created,
	}
	if info.State != nil {
		resp["state"] = map[string]interface{}{
			"status":     info.State.Status,
			"running":    info.State.Running,
			"exitCode":   info.State.ExitCode,
			"startedAt":  info.State.StartedAt,
			"finishedAt": info.State.FinishedAt,
		}
	}
	if info.Config != nil {
		resp["image"] = info.Config.Image
		resp["cmd"] = info.Config.Cmd
		resp["env"] = info.Config.Env
		resp["workingDir"] = info.Config.WorkingDir
		resp["labels"] = info.Config.Labels
	}
	if info.NetworkSettings != nil {
		networks := make([]string, 0, len(info.NetworkSettings.Networks))
		for name := range info.NetworkSettings.Networks {
			networks = append(networks, name)
		}
		resp["networks"] = networks
	}
	mounts := make([]map[string]interface{}, 0, len(info.Mounts))
	for _, m := range info.Mounts {
		mounts = append(mounts, map[string]interface{}{
			"type":        m.Type,
			"source":      m.Source,
			"destination": m.Destination,
			"rw":          m.RW,
		})
	}
	resp["mounts"] = mounts

	WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleContainerStart(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}
	err := s.engine.ContainerStart(r.Context(), r.PathValue("id"), container.StartOptions{})
	s.writeEngineResult(w, "container", "container started", err)
}

func (s *Server) handleContainerStop(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}
	err := s.engine.ContainerStop(r.Context(), r.PathValue("id"), container.StopOptions{})
	s.writeEngineResult(w, "container", "container stopped", err)
}

func (s *Server) handleContainerRestart(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}
	err := s.engine.ContainerRestart(r.Context(), r.PathValue("id"), container.StopOptions{})
	s.writeEngineResult(w, "container", "container restarted", err)
}

func (s *Server) handleContainerRemove(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}
	force := r.URL.Query().Get("force") == "true"
	err := s.engine.ContainerRemove(r.Context(), r.PathValue("id"), container.RemoveOptions{Force: force})
	s.writeEngineResult(w, "container", "container removed", err)
}

func (s *Server) handleContainerLogs(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	id := r.PathValue("id")
	q := r.URL.Query()
	tail := q.Get("tail")
	if tail == "" {
		tail = "100"
	}

	// Tty containers produce a raw stream, others a multiplexed one.
	info, err := s.engine.ContainerInspect(r.Context(), id)
	if err != nil {
		s.writeEngineError(w, "container", err)
		return
	}

	rc, err := s.engine.ContainerLogs(r.Context(), id, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Tail:       tail,
		Timestamps: q.Get("timestamps") == "true",
	})
	if err != nil {
		s.writeEngineError(w, "container", err)
		return
	}
	defer rc.Close()

	var buf bytes.Buffer
	if info.Config != nil && info.Config.Tty {
		_, err = io.Copy(&buf, rc)
	} else {
		_, err = stdcopy.StdCopy(&buf, &buf, rc)
	}
	if err != nil {
		s.writeEngineError(w, "container", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"logs": buf.String()})
}
