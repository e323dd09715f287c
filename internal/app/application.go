package app

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rfm/internal/config"
	"github.com/kk-code-lab/rfm/internal/fileops"
	"github.com/kk-code-lab/rfm/internal/logging"
	"github.com/kk-code-lab/rfm/internal/search"
	statepkg "github.com/kk-code-lab/rfm/internal/state"
	inputui "github.com/kk-code-lab/rfm/internal/ui/input"
	renderui "github.com/kk-code-lab/rfm/internal/ui/render"
	"github.com/kk-code-lab/rfm/internal/watch"
	"go.uber.org/zap"
)

// skipLogInterval throttles "skipped unreadable entry" log lines.
const skipLogInterval = time.Second

// Options configures a new Application.
type Options struct {
	Config   *config.Config
	Logger   *logging.Logger
	StartDir string
	// Screen overrides the terminal screen. It must not be initialised yet.
	Screen tcell.Screen
	// Launcher overrides the OS launcher.
	Launcher statepkg.Launcher
}

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	watcher    *watch.Watcher
	watching   string
	log        *logging.Logger
	shouldQuit bool

	lastClickRow  int
	lastClickTime time.Time
}

// New initialises the screen and roots the engine at opts.StartDir.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewNop()
	}

	screen := opts.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	// Parse mouse sequences so modified clicks don't leak as key events.
	screen.EnableMouse()

	onSkip := log.SkipReporter(skipLogInterval)
	searcher := &search.Searcher{
		Interval: cfg.Search.Debounce,
		Exclude:  cfg.Search.Exclude,
		Workers:  cfg.Search.Workers,
		OnSkip:   onSkip,
	}
	launcher := opts.Launcher
	if launcher == nil {
		launcher = newPlatformLauncher(cfg.UI.Terminal, log.Logger)
	}

	state := statepkg.NewAppState(statepkg.Options{
		Operations: fileops.New(log.Logger),
		Searcher:   searcher,
		Launcher:   launcher,
		Logger:     log.Logger,
		OnSkip:     onSkip,
		DarkMode:   cfg.UI.Theme == "dark",
	})
	state.ScreenWidth, state.ScreenHeight = screen.Size()

	if state.Navigate(opts.StartDir) == statepkg.Rejected {
		screen.Fini()
		return nil, fmt.Errorf("%s is not a directory", opts.StartDir)
	}

	actionCh := make(chan statepkg.Action, 10)
	inputHandler := inputui.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	app := &Application{
		screen:       screen,
		state:        state,
		reducer:      statepkg.NewStateReducer(),
		renderer:     renderui.NewRenderer(screen),
		input:        inputHandler,
		actionCh:     actionCh,
		log:          log,
		lastClickRow: -1,
	}

	if cfg.Watch.Enabled {
		watcher, err := watch.New(cfg.Watch.Coalesce, log.Logger)
		if err != nil {
			log.Warn("filesystem watch unavailable", zap.Error(err))
		} else {
			app.watcher = watcher
			app.syncWatch()
		}
	}

	log.Info("started", zap.String("path", state.CurrentPath))
	return app, nil
}

// Close cleans up resources.
func (app *Application) Close() error {
	var err error
	if app.watcher != nil {
		err = app.watcher.Close()
	}
	app.screen.Fini()
	_ = app.log.Sync()
	return err
}

// CurrentPath returns the directory the engine is rooted at.
func (app *Application) CurrentPath() string {
	return app.state.CurrentPath
}

// syncWatch points the watcher at the current directory after navigation.
func (app *Application) syncWatch() {
	if app.watcher == nil || app.watching == app.state.CurrentPath {
		return
	}
	app.watching = app.state.CurrentPath
	if err := app.watcher.Watch(app.watching); err != nil {
		app.log.Warn("watch failed", zap.String("path", app.watching), zap.Error(err))
	}
}
