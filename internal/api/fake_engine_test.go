package api

import (
	"context"
	"errors"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/events"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/system"
	"github.com/docker/docker/api/types/volume"

	"github.com/opentocoder/docker-panel/internal/engine"
)

// fakeEngine implements engine.API with overridable behavior per method.
// Methods without an override return zero values.
type fakeEngine struct {
	containerList    func(options container.ListOptions) ([]container.Summary, error)
	containerInspect func(id string) (container.InspectResponse, error)
	containerStart   func(id string) error
	containerStop    func(id string) error
	containerRestart func(id string) error
	containerRemove  func(id string, options container.RemoveOptions) error
	containerLogs    func(id string, options container.LogsOptions) (io.ReadCloser, error)

	imageList   func() ([]image.Summary, error)
	imageRemove func(id string, options image.RemoveOptions) ([]image.DeleteResponse, error)
	imagePull   func(ref string) (io.ReadCloser, error)
	imagesPrune func() (image.PruneReport, error)

	networkList    func() ([]network.Summary, error)
	networkInspect func(id string) (network.Inspect, error)
	networkCreate  func(name string, options network.CreateOptions) (network.CreateResponse, error)
	networkRemove  func(id string) error

	volumeList   func() (volume.ListResponse, error)
	volumeCreate func(options volume.CreateOptions) (volume.Volume, error)
	volumeRemove func(name string, force bool) error
	volumesPrune func() (volume.PruneReport, error)

	info          func() (system.Info, error)
	serverVersion func() (types.Version, error)
	events        func(ctx context.Context) (<-chan events.Message, <-chan error)
}

var _ engine.API = (*fakeEngine)(nil)

func (f *fakeEngine) ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error) {
	if f.containerList != nil {
		return f.containerList(options)
	}
	return nil, nil
}

func (f *fakeEngine) ContainerInspect(ctx context.Context, id string) (container.InspectResponse, error) {
	if f.containerInspect != nil {
		return f.containerInspect(id)
	}
	return container.InspectResponse{}, nil
}

func (f *fakeEngine) ContainerStart(ctx context.Context, id string, options container.StartOptions) error {
	if f.containerStart != nil {
		return f.containerStart(id)
	}
	return nil
}

func (f *fakeEngine) ContainerStop(ctx context.Context, id string, options container.StopOptions) error {
	if f.containerStop != nil {
		return f.containerStop(id)
	}
	return nil
}

func (f *fakeEngine) ContainerRestart(ctx context.Context, id string, options container.StopOptions) error {
	if f.containerRestart != nil {
		return f.containerRestart(id)
	}
	return nil
}

func (f *fakeEngine) ContainerRemove(ctx context.Context, id string, options container.RemoveOptions) error {
	if f.containerRemove != nil {
		return f.containerRemove(id, options)
	}
	return nil
}

func (f *fakeEngine) ContainerLogs(ctx context.Context, id string, options container.LogsOptions) (io.ReadCloser, error) {
	if f.containerLogs != nil {
		return f.containerLogs(id, options)
	}
	return nil, errors.New("no logs configured")
}

func (f *fakeEngine) ImageList(ctx context.Context, options image.ListOptions) ([]image.Summary, error) {
	if f.imageList != nil {
		return f.imageList()
	}
	return nil, nil
}

func (f *fakeEngine) ImageRemove(ctx context.Context, id string, options image.RemoveOptions) ([]image.DeleteResponse, error) {
	if f.imageRemove != nil {
		return f.imageRemove(id, options)
	}
	return nil, nil
}

func (f *fakeEngine) ImagePull(ctx context.Context, ref string, options image.PullOptions) (io.ReadCloser, error) {
	if f.imagePull != nil {
		return f.imagePull(ref)
	}
	return io.NopCloser(&emptyReader{}), nil
}

func (f *fakeEngine) ImagesPrune(ctx context.Context, pruneFilter filters.Args) (image.PruneReport, error) {
	if f.imagesPrune != nil {
		return f.imagesPrune()
	}
	return image.PruneReport{}, nil
}

func (f *fakeEngine) NetworkList(ctx context.Context, options network.ListOptions) ([]network.Summary, error) {
	if f.networkList != nil {
		return f.networkList()
	}
	return nil, nil
}

func (f *fakeEngine) NetworkInspect(ctx context.Context, id string, options network.InspectOptions) (network.Inspect, error) {
	if f.networkInspect != nil {
		return f.networkInspect(id)
	}
	return network.Inspect{}, nil
}

func (f *fakeEngine) NetworkCreate(ctx context.Context, name string, options network.CreateOptions) (network.CreateResponse, error) {
	if f.networkCreate != nil {
		return f.networkCreate(name, options)
	}
	return network.CreateResponse{}, nil
}

func (f *fakeEngine) NetworkRemove(ctx context.Context, id string) error {
	if f.networkRemove != nil {
		return f.networkRemove(id)
	}
	return nil
}

func (f *fakeEngine) VolumeList(ctx context.Context, options volume.ListOptions) (volume.ListResponse, error) {
	if f.volumeList != nil {
		return f.volumeList()
	}
	return volume.ListResponse{}, nil
}

func (f *fakeEngine) VolumeCreate(ctx context.Context, options volume.CreateOptions) (volume.Volume, error) {
	if f.volumeCreate != nil {
		return f.volumeCreate(options)
	}
	return volume.Volume{}, nil
}

func (f *fakeEngine) VolumeRemove(ctx context.Context, name string, force bool) error {
	if f.volumeRemove != nil {
		return f.volumeRemove(name, force)
	}
	return nil
}

func (f *fakeEngine) VolumesPrune(ctx context.Context, pruneFilter filters.Args) (volume.PruneReport, error) {
	if f.volumesPrune != nil {
		return f.volumesPrune()
	}
	return volume.PruneReport{}, nil
}

func (f *fakeEngine) Info(ctx context.Context) (system.Info, error) {
	if f.info != nil {
		return f.info()
	}
	return system.Info{}, nil
}

func (f *fakeEngine) ServerVersion(ctx context.Context) (types.Version, error) {
	if f.serverVersion != nil {
		return f.serverVersion()
	}
	return types.Version{}, nil
}

func (f *fakeEngine) Events(ctx context.Context, options events.ListOptions) (<-chan events.Message, <-chan error) {
	if f.events != nil {
		return f.events(ctx)
	}
	msgCh := make(chan events.Message)
	errCh := make(chan error)
	return msgCh, errCh
}

type emptyReader struct{}

func (*emptyReader) Read(p []byte) (int, error) { return 0, io.EOF }
