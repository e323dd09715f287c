package state

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDirectoryName prefills the create-directory prompt.
const DefaultDirectoryName = "New Folder"

var userHomeDirFn = os.UserHomeDir

// StateReducer applies actions to an AppState. It is the only way the UI
// mutates the engine.
type StateReducer struct{}

// NewStateReducer creates a new reducer
func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

// Reduce applies action to state. Filesystem failures never surface here;
// they end up in the status line and the log.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	if clearsStatus(action) {
		state.StatusMessage = ""
		state.LastError = nil
	}

	switch a := action.(type) {

	// ===== CURSOR =====

	case CursorUpAction:
		state.MoveCursor(-1)
	case CursorDownAction:
		state.MoveCursor(1)
	case PageUpAction:
		state.MoveCursor(-state.ListHeight())
	case PageDownAction:
		state.MoveCursor(state.ListHeight())
	case CursorHomeAction:
		state.MoveCursorTo(0)
	case CursorEndAction:
		state.MoveCursorTo(len(state.DisplayEntries()) - 1)

	// ===== NAVIGATION =====

	case EnterAction:
		entry := state.CurrentEntry()
		if entry == nil {
			return state, nil
		}
		if entry.IsDir {
			state.Navigate(entry.Path)
			return state, nil
		}
		_ = state.Open(entry.Path)

	case GoUpAction:
		state.NavigateUp()

	case GoHomeAction:
		home, err := userHomeDirFn()
		if err != nil {
			return state, fmt.Errorf("resolve home directory: %w", err)
		}
		state.Navigate(home)

	case NavigateAction:
		state.Navigate(a.Path)

	case SelectAction:
		state.Select(a.Path)

	// ===== SEARCH =====

	case SearchStartAction:
		state.Prompt = nil
		state.SearchActive = true

	case SearchCharAction:
		if !state.SearchActive {
			return state, nil
		}
		state.SetSearchQuery(state.SearchQuery + string(a.Char))

	case SearchBackspaceAction:
		if !state.SearchActive {
			return state, nil
		}
		runes := []rune(state.SearchQuery)
		if len(runes) == 0 {
			return state, nil
		}
		state.SetSearchQuery(string(runes[:len(runes)-1]))

	case SearchConfirmAction:
		state.SearchActive = false

	case SearchClearAction:
		state.SearchActive = false
		state.SetSearchQuery("")

	case SearchTickAction:
		state.RetrySearch()

	// ===== FILE OPERATIONS =====

	case CopyAction:
		if entry := state.CurrentEntry(); entry != nil {
			state.CopyToClipboard(entry.Path)
		}

	case PasteAction:
		_ = state.Paste()

	case DeleteAction:
		if entry := state.CurrentEntry(); entry != nil {
			state.Prompt = &Prompt{Kind: PromptConfirmDelete, Target: entry.Path}
		}

	case RenameAction:
		if entry := state.CurrentEntry(); entry != nil {
			name := []rune(filepath.Base(entry.Path))
			state.Prompt = &Prompt{Kind: PromptRename, Target: entry.Path, Input: name, Cursor: len(name)}
		}

	case CreateDirectoryAction:
		name := []rune(DefaultDirectoryName)
		state.Prompt = &Prompt{Kind: PromptCreateDirectory, Target: state.CurrentPath, Input: name, Cursor: len(name)}

	case OpenAction:
		if entry := state.CurrentEntry(); entry != nil {
			_ = state.Open(entry.Path)
		}

	case OpenTerminalAction:
		target := state.CurrentPath
		if entry := state.CurrentEntry(); entry != nil && entry.IsDir {
			target = entry.Path
		}
		_ = state.OpenTerminal(target)

	// ===== PROMPT =====

	case PromptCharAction:
		if p := state.Prompt; p != nil && p.Kind != PromptConfirmDelete {
			p.Input = append(p.Input[:p.Cursor], append([]rune{a.Char}, p.Input[p.Cursor:]...)...)
			p.Cursor++
		}

	case PromptBackspaceAction:
		if p := state.Prompt; p != nil && p.Cursor > 0 {
			p.Input = append(p.Input[:p.Cursor-1], p.Input[p.Cursor:]...)
			p.Cursor--
		}

	case PromptCursorAction:
		if p := state.Prompt; p != nil {
			p.Cursor += a.Delta
			if p.Cursor < 0 {
				p.Cursor = 0
			}
			if p.Cursor > len(p.Input) {
				p.Cursor = len(p.Input)
			}
		}

	case PromptConfirmAction:
		p := state.Prompt
		state.Prompt = nil
		if p == nil {
			return state, nil
		}
		switch p.Kind {
		case PromptConfirmDelete:
			_ = state.Delete(p.Target)
		case PromptRename:
			_ = state.Rename(p.Target, string(p.Input))
		case PromptCreateDirectory:
			_ = state.CreateDirectory(string(p.Input))
		}

	case PromptCancelAction:
		state.Prompt = nil

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.clampSelection()

	case RefreshAction, ExternalChangeAction:
		selected := state.SelectedFile
		state.Refresh()
		if !state.selectPath(selected) {
			state.SelectedFile = ""
		}

	case ToggleThemeAction:
		state.DarkMode = !state.DarkMode

	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible

	case HelpHideAction:
		state.HelpVisible = false
	}

	return state, nil
}

// clearsStatus reports whether action comes from the user. Background
// actions leave the last message on screen.
func clearsStatus(action Action) bool {
	switch action.(type) {
	case SearchTickAction, ExternalChangeAction, ResizeAction:
		return false
	}
	return true
}
