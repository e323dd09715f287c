package app

import (
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rfm/internal/state"
	renderui "github.com/kk-code-lab/rfm/internal/ui/render"
)

const (
	doubleClickThreshold = 300 * time.Millisecond
	animationInterval    = 50 * time.Millisecond
	listStartY           = 1
)

// Run drives the event loop until the user quits.
func (app *Application) Run() {
	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	var changes <-chan string
	if app.watcher != nil {
		changes = app.watcher.Changes()
	}

	animation := newTicker(animationInterval)
	defer animation.stop()
	var searchTimer *time.Timer
	var searchCh <-chan time.Time

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		if app.shouldAnimate() {
			animation.start()
		} else {
			animation.stop()
		}

		// A debounced keystroke leaves the query unsearched; retry it once
		// the interval has passed so the last query always gets results.
		if app.state.SearchPending() && searchCh == nil {
			searchTimer = time.NewTimer(app.searchDelay())
			searchCh = searchTimer.C
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-animation.c:
			renderPending = true
		case <-searchCh:
			searchCh = nil
			if app.handleAction(statepkg.SearchTickAction{}) {
				renderPending = true
			}
		case dir := <-changes:
			if dir == app.state.CurrentPath && app.handleAction(statepkg.ExternalChangeAction{}) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}

	if searchTimer != nil {
		searchTimer.Stop()
	}
}

// searchDelay is the time left until the searcher's gate opens again.
func (app *Application) searchDelay() time.Duration {
	delay := app.state.SearchInterval() - time.Since(app.state.LastSearchTime)
	if delay < time.Millisecond {
		delay = time.Millisecond
	}
	return delay
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps primary clicks to selection and the wheel to cursor
// movement. A double click on a row enters it.
func (app *Application) handleMouse(ev *tcell.EventMouse) {
	if app.state == nil || app.state.Prompt != nil || app.state.HelpVisible {
		return
	}

	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		app.actionCh <- statepkg.CursorUpAction{}
		return
	case buttons&tcell.WheelDown != 0:
		app.actionCh <- statepkg.CursorDownAction{}
		return
	case buttons&tcell.Button1 == 0:
		return
	}

	_, y := ev.Position()
	bottomLimit := app.state.ScreenHeight - 2 // status line and footer
	if y < listStartY || y >= bottomLimit {
		return
	}
	row := y - listStartY

	entries := app.state.DisplayEntries()
	displayIdx := app.state.ScrollOffset + row
	if displayIdx < 0 || displayIdx >= len(entries) {
		return
	}

	doubleClick := app.lastClickRow == displayIdx && time.Since(app.lastClickTime) <= doubleClickThreshold
	app.lastClickRow = displayIdx
	app.lastClickTime = time.Now()

	app.actionCh <- statepkg.SelectAction{Path: entries[displayIdx].Path}
	if doubleClick {
		app.lastClickRow = -1
		app.actionCh <- statepkg.EnterAction{}
	}
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) shouldAnimate() bool {
	if app.state == nil || app.state.LastYankTime.IsZero() {
		return false
	}
	return time.Since(app.state.LastYankTime) < renderui.FlashDuration
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.YankPathAction:
		return app.handleYank()
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
		app.state.StatusMessage = err.Error()
	}
	app.syncWatch()
	return true
}

// ticker is a restartable animation timer.
type ticker struct {
	interval time.Duration
	timer    *time.Timer
	c        <-chan time.Time
}

func newTicker(interval time.Duration) *ticker {
	return &ticker{interval: interval}
}

func (t *ticker) start() {
	if t.timer == nil {
		t.timer = time.NewTimer(t.interval)
	} else {
		t.timer.Stop()
		t.timer.Reset(t.interval)
	}
	t.c = t.timer.C
}

func (t *ticker) stop() {
	if t.timer == nil {
		return
	}
	t.timer.Stop()
	t.c = nil
}
