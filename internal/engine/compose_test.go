package engine

import (
	"testing"

	"github.com/docker/docker/api/types/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func composeContainer(id, name, project, service, state string) container.Summary {
	return container.Summary{
		ID:    id,
		Names: []string{"/" + name},
		State: state,
		Labels: map[string]string{
			ComposeProjectLabel: project,
			ComposeServiceLabel: service,
		},
	}
}

func TestGroupComposeProjects(t *testing.T) {
	containers := []container.Summary{
		composeContainer("c1", "web-app-1", "web", "app", "running"),
		composeContainer("c2", "web-db-1", "web", "db", "exited"),
		composeContainer("c3", "batch-worker-1", "batch", "worker", "exited"),
		{ID: "c4", Names: []string{"/standalone"}, State: "running"},
	}

	projects := GroupComposeProjects(containers)
	require.Len(t, projects, 2)

	// Sorted by project name.
	assert.Equal(t, "batch", projects[0].Name)
	assert.Equal(t, "web", projects[1].Name)

	assert.Equal(t, "stopped", projects[0].Status)
	assert.Equal(t, "running", projects[1].Status)

	require.Len(t, projects[1].Containers, 2)
	assert.Equal(t, "web-app-1", projects[1].Containers[0].Name)
	assert.Equal(t, "app", projects[1].Containers[0].Service)
	assert.Equal(t, "db", projects[1].Containers[1].Service)
}

func TestGroupComposeProjectsEmpty(t *testing.T) {
	assert.Empty(t, GroupComposeProjects(nil))
	assert.Empty(t, GroupComposeProjects([]container.Summary{
		{ID: "c1", Names: []string{"/loner"}, State: "running"},
	}))
}

func TestContainerName(t *testing.T) {
	assert.Equal(t, "web", ContainerName(container.Summary{ID: "abc", Names: []string{"/web"}}))
	assert.Equal(t, "abc", ContainerName(container.Summary{ID: "abc"}))
}
