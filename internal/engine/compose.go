package engine

import (
	"sort"
	"strings"

	"github.com/docker/docker/api/types/container"
)

// Compose labels the engine stamps on containers it created on behalf
// of a compose project.
const (
	ComposeProjectLabel = "com.docker.compose.project"
	ComposeServiceLabel = "com.docker.compose.service"
)

// ComposeContainer is one container's membership in a compose project.
type ComposeContainer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Service string `json:"service"`
	State   string `json:"state"`
	Status  string `json:"status"`
}

// ComposeProject is a group of containers sharing a compose project label.
type ComposeProject struct {
	Name       string             `json:"name"`
	Status     string             `json:"status"`
	Containers []ComposeContainer `json:"containers"`
}

// ContainerName returns the primary name of a container summary without
// the engine's leading slash.
func ContainerName(c container.Summary) string {
	if len(c.Names) == 0 {
		return c.ID
	}
	return strings.TrimPrefix(c.Names[0], "/")
}

// GroupComposeProjects buckets containers by their compose project label,
// skipping containers that carry none. A project is "running" when at
// least one of its containers is, "stopped" otherwise. Projects come
// back sorted by name.
func GroupComposeProjects(containers []container.Summary) []ComposeProject {
	groups := make(map[string]*ComposeProject)
	for _, c := range containers {
		project := c.Labels[ComposeProjectLabel]
		if project == "" {
			continue
		}
		g, ok := groups[project]
		if !ok {
			g = &ComposeProject{Name: project, Status: "stopped"}
			groups[project] = g
		}
		if c.State == "running" {
			g.Status = "running"
		}
		g.Containers = append(g.Containers, ComposeContainer{
			ID:      c.ID,
			Name:    ContainerName(c),
			Service: c.Labels[ComposeServiceLabel],
			State:   c.State,
			Status:  c.Status,
		})
	}

	projects := make([]ComposeProject, 0, len(groups))
	for _, g := range groups {
		projects = append(projects, *g)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects
}
