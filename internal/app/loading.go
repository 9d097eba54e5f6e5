package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/engine/input"
	"github.com/Faultbox/showroom/internal/engine/loader"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/logger"
	"github.com/Faultbox/showroom/internal/showroom"
)

// LoadingState decodes the model off the main thread and hands the bound
// scene to a ViewingState once it arrives.
type LoadingState struct {
	app     *App
	path    string
	pending <-chan loader.Result
	empty   *scene.Node
	started time.Time
}

// NewLoadingState creates a loading state for the model at path.
func NewLoadingState(app *App, path string) *LoadingState {
	return &LoadingState{app: app, path: path, empty: scene.NewNode("loading")}
}

func (s *LoadingState) Name() string { return "loading" }

// Enter starts the asynchronous load.
func (s *LoadingState) Enter() error {
	s.started = time.Now()
	s.pending = loader.LoadAsync(s.app.ctx, s.path)
	logger.Info("loading model", zap.String("path", s.path))
	return nil
}

func (s *LoadingState) Exit() error {
	return nil
}

// Update polls for the load result without blocking the frame.
func (s *LoadingState) Update(time.Duration) error {
	select {
	case res, ok := <-s.pending:
		if !ok {
			return nil
		}
		s.pending = nil
		root, table := bind(res, showroom.DefaultCatalog())
		s.app.states.Change(NewViewingState(s.app, res.Asset, root, table))
	default:
	}
	return nil
}

// Render shows the empty stage while loading.
func (s *LoadingState) Render() error {
	s.app.renderer.Render(s.empty, s.app.camera, s.app.rig)
	return nil
}

// HandleEvent ignores input; clicks before binding have nothing to hit.
func (s *LoadingState) HandleEvent(input.Event) error {
	return nil
}

// bind resolves the catalog against a load result. A failed load, or a
// catalog that does not validate, is logged and yields an empty scene and
// an empty table, so every toggle becomes a no-op.
func bind(res loader.Result, cat showroom.Catalog) (*scene.Node, *showroom.Table) {
	if res.Err != nil || res.Asset == nil || res.Asset.Root == nil {
		if !isCancel(res.Err) {
			logger.Error("model load failed", zap.String("path", res.Path), zap.Error(res.Err))
		}
		return scene.NewNode("empty"), showroom.EmptyTable()
	}
	logger.Info("model loaded",
		zap.String("path", res.Path),
		zap.Duration("elapsed", res.Elapsed),
		zap.Int("textures", len(res.Asset.Textures)))

	table, err := showroom.Resolve(res.Asset.Root, cat, nil)
	if err != nil {
		logger.Error("binding model failed", zap.Error(err))
		return res.Asset.Root, showroom.EmptyTable()
	}
	return res.Asset.Root, table
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
