package render

import (
	"path/filepath"
	"strings"

	statepkg "github.com/kk-code-lab/rfm/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	segments := contextualHelpSegments(state)
	segments = append(segments, persistentHelpSegments(state)...)

	return segments
}

func contextualHelpSegments(state *statepkg.AppState) []string {
	switch {
	case state.Prompt != nil && state.Prompt.Kind == statepkg.PromptConfirmDelete:
		return []string{
			"y/↵: delete",
			"any key: cancel",
		}
	case state.Prompt != nil:
		return []string{
			"type: edit name",
			"↵: confirm",
			"Esc: cancel",
		}
	case state.SearchActive:
		return []string{
			"type: search",
			"↵: keep results",
			"Esc: clear",
			"↑↓: select",
		}
	case state.SearchQuery != "":
		return []string{
			"↵: go to",
			"Esc: clear search",
			"/: edit query",
		}
	default:
		return []string{
			"↵/←: navigate",
			"/: search",
			"c/v: copy/paste",
			"d: delete",
			"R: rename",
			"n: new folder",
			"o: open",
			"t: terminal",
			"?: help",
		}
	}
}

func persistentHelpSegments(state *statepkg.AppState) []string {
	if state.Prompt != nil || state.SearchActive || state.Clipboard == "" {
		return nil
	}
	return []string{"clipboard: " + filepath.Base(state.Clipboard)}
}
