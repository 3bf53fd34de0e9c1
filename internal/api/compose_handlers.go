package api

import (
	"net/http"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"

	"github.com/opentocoder/docker-panel/internal/engine"
)

func (s *Server) handleComposeList(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	containers, err := s.engine.ContainerList(r.Context(), container.ListOptions{All: true})
	if err != nil {
		s.writeEngineError(w, "container", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"projects": engine.GroupComposeProjects(containers),
	})
}

// composeMembers lists every container labeled with the given project.
func (s *Server) composeMembers(r *http.Request, project string) ([]container.Summary, error) {
	f := filters.NewArgs(filters.Arg("label", engine.ComposeProjectLabel+"="+project))
	return s.engine.ContainerList(r.Context(), container.ListOptions{All: true, Filters: f})
}

func (s *Server) handleComposeStart(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	project := r.PathValue("name")
	members, err := s.composeMembers(r, project)
	if err != nil {
		s.writeEngineError(w, "container", err)
		return
	}
	if len(members) == 0 {
		WriteError(w, http.StatusNotFound, "project not found")
		return
	}

	started := 0
	for _, c := range members {
		if c.State == "running" {
			continue
		}
		if err := s.engine.ContainerStart(r.Context(), c.ID, container.StartOptions{}); err != nil {
			s.writeEngineError(w, "container", err)
			return
		}
		started++
	}

	s.logger.Info("compose project started", "project", project, "started", started)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"started": started,
	})
}

func (s *Server) handleComposeStop(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	project := r.PathValue("name")
	members, err := s.composeMembers(r, project)
	if err != nil {
		s.writeEngineError(w, "container", err)
		return
	}
	if len(members) == 0 {
		WriteError(w, http.StatusNotFound, "project not found")
		return
	}

	stopped := 0
	for _, c := range members {
		if c.State != "running" {
			continue
		}
		if err := s.engine.ContainerStop(r.Context(), c.ID, container.StopOptions{}); err != nil {
			s.writeEngineError(w, "container", err)
			return
		}
		stopped++
	}

	s.logger.Info("compose project stopped", "project", project, "stopped", stopped)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stopped": stopped,
	})
}
