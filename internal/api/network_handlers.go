package api

import (
	"net/http"

	"github.com/docker/docker/api/types/network"
)

func networkSummary(n network.Summary) map[string]interface{} {
	return map[string]interface{}{
		"id":         n.ID,
		"name":       n.Name,
		"driver":     n.Driver,
		"scope":      n.Scope,
		"internal":   n.Internal,
		"attachable": n.Attachable,
		"created":    n.Created,
		"containers": len(n.Containers),
	}
}

func (s *Server) handleNetworkList(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	networks, err := s.engine.NetworkList(r.Context(), network.ListOptions{})
	if err != nil {
		s.writeEngineError(w, "network", err)
		return
	}

	infos := make([]map[string]interface{}, 0, len(networks))
	for _, n := range networks {
		infos = append(infos, networkSummary(n))
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"networks": infos})
}

type networkCreateRequest struct {
	Name   string `json:"name"`
	Driver string `json:"driver"`
}

func (s *Server) handleNetworkCreate(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	var req networkCreateRequest
	if err := BindJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		WriteError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Driver == "" {
		req.Driver = "bridge"
	}

	resp, err := s.engine.NetworkCreate(r.Context(), req.Name, network.CreateOptions{Driver: req.Driver})
	if err != nil {
		s.writeEngineError(w, "network", err)
		return
	}

	s.logger.Info("network created", "name", req.Name, "driver", req.Driver)
	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      resp.ID,
		"warning": resp.Warning,
	})
}

func (s *Server) handleNetworkInspect(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	n, err := s.engine.NetworkInspect(r.Context(), r.PathValue("id"), network.InspectOptions{})
	if err != nil {
		s.writeEngineError(w, "network", err)
		return
	}

	resp := networkSummary(network.Summary(n))
	containers := make([]map[string]interface{}, 0, len(n.Containers))
	for id, ep := range n.Containers {
		containers = append(containers, map[string]interface{}{
			"id":   id,
			"name": ep.Name,
			"ipv4": ep.IPv4Address,
		})
	}
	resp["containers"] = containers

	subnets := make([]map[string]interface{}, 0, len(n.IPAM.Config))
	for _, c := range n.IPAM.Config {
		subnets = append(subnets, map[string]interface{}{
			"subnet":  c.Subnet,
			"gateway": c.Gateway,
		})
	}
	resp["subnets"] = subnets

	WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNetworkRemove(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}
	err := s.engine.NetworkRemove(r.Context(), r.PathValue("id"))
	s.writeEngineResult(w, "network", "network removed", err)
}
