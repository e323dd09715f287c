package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rfm/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the user asked to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) emit(action statepkg.Action) bool {
	ih.actionChan <- action
	return true
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		ih.actionChan <- statepkg.QuitAction{}
		return false
	}

	st := ih.state
	switch {
	case st != nil && st.HelpVisible:
		return ih.processHelpKey(ev)
	case st != nil && st.Prompt != nil:
		return ih.processPromptKey(ev, st.Prompt)
	case st != nil && st.SearchActive:
		return ih.processSearchKey(ev)
	default:
		return ih.processNormalKey(ev)
	}
}

func (ih *InputHandler) processHelpKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		return ih.emit(statepkg.HelpHideAction{})
	case tcell.KeyRune:
		switch ev.Rune() {
		case '?', 'q', 'Q':
			return ih.emit(statepkg.HelpHideAction{})
		}
	}
	return true
}

func (ih *InputHandler) processPromptKey(ev *tcell.EventKey, prompt *statepkg.Prompt) bool {
	if prompt.Kind == statepkg.PromptConfirmDelete {
		switch {
		case ev.Key() == tcell.KeyEnter,
			ev.Key() == tcell.KeyRune && (ev.Rune() == 'y' || ev.Rune() == 'Y'):
			return ih.emit(statepkg.PromptConfirmAction{})
		default:
			return ih.emit(statepkg.PromptCancelAction{})
		}
	}

	switch ev.Key() {
	case tcell.KeyEnter:
		return ih.emit(statepkg.PromptConfirmAction{})
	case tcell.KeyEscape:
		return ih.emit(statepkg.PromptCancelAction{})
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ih.emit(statepkg.PromptBackspaceAction{})
	case tcell.KeyLeft:
		return ih.emit(statepkg.PromptCursorAction{Delta: -1})
	case tcell.KeyRight:
		return ih.emit(statepkg.PromptCursorAction{Delta: 1})
	case tcell.KeyHome, tcell.KeyCtrlA:
		return ih.emit(statepkg.PromptCursorAction{Delta: -len(prompt.Input)})
	case tcell.KeyEnd, tcell.KeyCtrlE:
		return ih.emit(statepkg.PromptCursorAction{Delta: len(prompt.Input)})
	case tcell.KeyRune:
		return ih.emit(statepkg.PromptCharAction{Char: ev.Rune()})
	}
	return true
}

func (ih *InputHandler) processSearchKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		return ih.emit(statepkg.SearchClearAction{})
	case tcell.KeyEnter:
		return ih.emit(statepkg.SearchConfirmAction{})
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if ih.state.SearchQuery == "" {
			return ih.emit(statepkg.SearchClearAction{})
		}
		return ih.emit(statepkg.SearchBackspaceAction{})
	case tcell.KeyUp:
		return ih.emit(statepkg.CursorUpAction{})
	case tcell.KeyDown:
		return ih.emit(statepkg.CursorDownAction{})
	case tcell.KeyPgUp:
		return ih.emit(statepkg.PageUpAction{})
	case tcell.KeyPgDn:
		return ih.emit(statepkg.PageDownAction{})
	case tcell.KeyRune:
		// every rune is query input here, including the command keys
		return ih.emit(statepkg.SearchCharAction{Char: ev.Rune()})
	}
	return true
}

func (ih *InputHandler) processNormalKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		if ih.state != nil && ih.state.SearchQuery != "" {
			return ih.emit(statepkg.SearchClearAction{})
		}
		return true
	case tcell.KeyUp:
		return ih.emit(statepkg.CursorUpAction{})
	case tcell.KeyDown:
		return ih.emit(statepkg.CursorDownAction{})
	case tcell.KeyPgUp:
		return ih.emit(statepkg.PageUpAction{})
	case tcell.KeyPgDn:
		return ih.emit(statepkg.PageDownAction{})
	case tcell.KeyHome:
		return ih.emit(statepkg.CursorHomeAction{})
	case tcell.KeyEnd:
		return ih.emit(statepkg.CursorEndAction{})
	case tcell.KeyEnter, tcell.KeyRight:
		return ih.emit(statepkg.EnterAction{})
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		return ih.emit(statepkg.GoUpAction{})
	case tcell.KeyDelete:
		return ih.emit(statepkg.DeleteAction{})
	case tcell.KeyF2:
		return ih.emit(statepkg.RenameAction{})
	case tcell.KeyF5:
		return ih.emit(statepkg.RefreshAction{})
	case tcell.KeyCtrlZ:
		return ih.emit(statepkg.SuspendAction{})
	case tcell.KeyRune:
		return ih.processCommandRune(ev.Rune())
	}
	return true
}

func (ih *InputHandler) processCommandRune(r rune) bool {
	switch r {
	case 'q':
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case 'k':
		return ih.emit(statepkg.CursorUpAction{})
	case 'j':
		return ih.emit(statepkg.CursorDownAction{})
	case 'g':
		return ih.emit(statepkg.CursorHomeAction{})
	case 'G':
		return ih.emit(statepkg.CursorEndAction{})
	case 'l':
		return ih.emit(statepkg.EnterAction{})
	case 'h':
		return ih.emit(statepkg.GoUpAction{})
	case '~':
		return ih.emit(statepkg.GoHomeAction{})
	case '/':
		return ih.emit(statepkg.SearchStartAction{})
	case 'c':
		return ih.emit(statepkg.CopyAction{})
	case 'v', 'p':
		return ih.emit(statepkg.PasteAction{})
	case 'd':
		return ih.emit(statepkg.DeleteAction{})
	case 'R':
		return ih.emit(statepkg.RenameAction{})
	case 'n':
		return ih.emit(statepkg.CreateDirectoryAction{})
	case 'o':
		return ih.emit(statepkg.OpenAction{})
	case 't':
		return ih.emit(statepkg.OpenTerminalAction{})
	case 'y':
		return ih.emit(statepkg.YankPathAction{})
	case 'r':
		return ih.emit(statepkg.RefreshAction{})
	case 'T':
		return ih.emit(statepkg.ToggleThemeAction{})
	case '?':
		return ih.emit(statepkg.HelpToggleAction{})
	}
	return true
}
