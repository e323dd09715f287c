package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== CURSOR ACTIONS =====

type CursorUpAction struct{}
type CursorDownAction struct{}
type PageUpAction struct{}
type PageDownAction struct{}
type CursorHomeAction struct{}
type CursorEndAction struct{}

// ===== NAVIGATION ACTIONS =====

type EnterAction struct{} // directory: navigate, file: open
type GoUpAction struct{}
type GoHomeAction struct{}
type NavigateAction struct {
	Path string
}
type SelectAction struct {
	Path string
}

// ===== SEARCH ACTIONS =====

type SearchStartAction struct{}
type SearchCharAction struct {
	Char rune
}
type SearchBackspaceAction struct{}
type SearchConfirmAction struct{} // leave input mode, keep results
type SearchClearAction struct{}
type SearchTickAction struct{} // retry a debounced search

// ===== FILE ACTIONS =====

type CopyAction struct{}
type PasteAction struct{}
type DeleteAction struct{} // asks for confirmation first
type RenameAction struct{}
type CreateDirectoryAction struct{}
type OpenAction struct{}
type OpenTerminalAction struct{}

// ===== PROMPT ACTIONS =====

type PromptCharAction struct {
	Char rune
}
type PromptBackspaceAction struct{}
type PromptCursorAction struct {
	Delta int
}
type PromptConfirmAction struct{}
type PromptCancelAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type RefreshAction struct{}
type ExternalChangeAction struct{} // the watched directory changed on disk
type ToggleThemeAction struct{}
type YankPathAction struct{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{}
type HelpToggleAction struct{}
type HelpHideAction struct{}
