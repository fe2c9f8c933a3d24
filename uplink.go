package uplink

import (
	"errors"
	"os"
	"sync"

	"github.com/uplink-social/uplink/core"
	"github.com/uplink-social/uplink/db"
	"github.com/uplink-social/uplink/event"

	"go.uber.org/zap"
)

var (
	activeApp App
)

type App interface {
	Init() error
	Start() error
	Stop() error
	Context() core.Context
	Serve() error
}

type AppImpl struct {
	ctx   core.Context
	ctxMu sync.RWMutex
}

func (a *AppImpl) Init() error {
	ctx := a.Context()

	ctx.Logger().Info("Initializing app")

	var ctxOpts []core.ContextBuilderOption

	// The database must be live before any service startup func runs.
	dbInst, err := db.NewDatabase(ctx.Config(), ctx.Logger().Logger)
	if err != nil {
		ctx.Logger().Error("Error opening database", zap.Error(err))
		return err
	}

	ctxOpts = append(ctxOpts, core.ContextWithDB(dbInst))

	opts, err := a.initServices(ctx)
	if err != nil {
		return err
	}
	ctxOpts = append(ctxOpts, opts...)

	ctxOpts = append(ctxOpts, core.ContextWithEvents(core.GetEvents()...))

	ctx, err = core.NewContext(ctx.Config(), ctx.Logger(), ctxOpts...)
	if err != nil {
		ctx.Logger().Error("Error creating context", zap.Error(err))
		return err
	}

	a.SetContext(ctx)

	return nil
}

func (a *AppImpl) initServices(ctx core.Context) (ctxOpts []core.ContextBuilderOption, err error) {
	for _, svcInfo := range core.GetServices() {
		svc, opts, err := svcInfo.Factory()
		if err != nil {
			ctx.Logger().Error("Error creating service", zap.String("service", svcInfo.ID), zap.Error(err))
			return nil, err
		}

		if opts != nil {
			ctxOpts = append(ctxOpts, opts...)
		}

		ctxOpts = append(ctxOpts, core.ContextWithService(svcInfo.ID, svc))
	}

	return ctxOpts, nil
}

func (a *AppImpl) Start() error {
	ctx := a.Context()
	ctx.Logger().Info("Starting app")

	if err := a.startStartupFuncs(ctx); err != nil {
		return err
	}

	if err := a.startHTTP(ctx); err != nil {
		return err
	}

	if err := event.FireBootCompleteEvent(ctx); err != nil {
		ctx.Logger().Error("Error firing boot complete event", zap.Error(err))
		return err
	}

	return nil
}

func (a *AppImpl) startStartupFuncs(ctx core.Context) error {
	for _, startupFunc := range ctx.StartupFuncs() {
		if err := startupFunc(ctx); err != nil {
			ctx.Logger().Error("Error starting app", zap.Error(err))
			return err
		}
	}

	return nil
}

func (a *AppImpl) startHTTP(ctx core.Context) error {
	httpSvc := ctx.Service(core.HTTP_SERVICE)

	if httpSvc == nil {
		ctx.Logger().Error("HTTP service not found")
		return errors.New("http service not found")
	}

	return httpSvc.(core.HTTPService).Init()
}

func (a *AppImpl) Stop() error {
	ctx := a.Context()
	ctx.Logger().Info("Stopping app")

	for _, exitFunc := range ctx.ExitFuncs() {
		if err := exitFunc(ctx); err != nil {
			ctx.Logger().Error("Error stopping app", zap.Error(err))
		}
	}

	return nil
}

func (a *AppImpl) Serve() error {
	ctx := a.Context()
	ctx.Logger().Info("Serving app")

	httpSvc := ctx.Service(core.HTTP_SERVICE)

	if httpSvc == nil {
		ctx.Logger().Error("HTTP service not found")
		return errors.New("http service not found")
	}

	return httpSvc.(core.HTTPService).Serve()
}

func NewApp(ctx core.Context) *AppImpl {
	return &AppImpl{
		ctx: ctx,
	}
}

func (a *AppImpl) Context() core.Context {
	a.ctxMu.RLock()
	defer a.ctxMu.RUnlock()
	return a.ctx
}

func (a *AppImpl) SetContext(ctx core.Context) {
	a.ctxMu.Lock()
	defer a.ctxMu.Unlock()
	a.ctx = ctx
}

func NewActiveApp(ctx core.Context) {
	activeApp = NewApp(ctx)
}

func Start() error {
	return activeApp.Start()
}

func Init() error {
	return activeApp.Init()
}

func Stop() error {
	return activeApp.Stop()
}

func Serve() error {
	return activeApp.Serve()
}

func Context() core.Context {
	return activeApp.Context()
}

func ActiveApp() App {
	return activeApp
}

func Shutdown(app App, logger *zap.Logger) {
	ctx := app.Context()

	if logger == nil {
		logger = ctx.Logger().Logger
	}

	ctx.Cancel()

	<-ctx.Done()

	if err := app.Stop(); err != nil {
		logger.Error("Failed to stop app", zap.Error(err))
		ctx.SetExitCode(core.ExitCodeFailedQuit)
	}

	os.Exit(ctx.ExitCode())
}
