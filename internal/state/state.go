package state

import (
	"time"

	"go.uber.org/zap"

	"github.com/kk-code-lab/rfm/internal/fileops"
	fsutil "github.com/kk-code-lab/rfm/internal/fs"
	"github.com/kk-code-lab/rfm/internal/search"
)

// FileEntry mirrors fs.Entry so UI/state code can rely on a stable type.
type FileEntry = fsutil.Entry

// Outcome tells a caller whether a navigation request was applied.
type Outcome int

const (
	Rejected Outcome = iota
	Accepted
)

func (o Outcome) String() string {
	if o == Accepted {
		return "accepted"
	}
	return "rejected"
}

// Launcher hands paths to the operating system. Both calls return once the
// external program has been started; they never wait for it.
type Launcher interface {
	Open(path string) error
	OpenTerminal(dir string) error
}

// PromptKind identifies what a pending prompt will do once confirmed.
type PromptKind int

const (
	PromptNone PromptKind = iota
	PromptRename
	PromptCreateDirectory
	PromptConfirmDelete
)

// Prompt is a line of user input collected in the status bar.
type Prompt struct {
	Kind   PromptKind
	Target string // path the prompt acts on
	Input  []rune
	Cursor int
}

// AppState is the single source of truth
type AppState struct {
	// Engine
	CurrentPath    string      // absolute, always an existing directory
	Entries        []FileEntry // children of CurrentPath in listing order
	SelectedFile   string
	Clipboard      string
	SearchQuery    string
	SearchResults  []FileEntry
	LastSearchTime time.Time

	// Search input mode
	SearchActive bool

	// Selection & viewport
	SelectedIndex int
	ScrollOffset  int

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Status line
	Prompt        *Prompt
	StatusMessage string
	LastYankTime  time.Time
	DarkMode      bool
	HelpVisible   bool

	// Error state
	LastError error

	ops      *fileops.Operations
	searcher *search.Searcher
	launcher Launcher
	log      *zap.Logger
	onSkip   fsutil.SkipFunc
	now      func() time.Time

	searchedFor string

	displayCache []FileEntry
	displayValid bool
}

// Options wires the collaborators an AppState works with. Zero fields fall
// back to working defaults.
type Options struct {
	Operations *fileops.Operations
	Searcher   *search.Searcher
	Launcher   Launcher
	Logger     *zap.Logger
	OnSkip     fsutil.SkipFunc
	Clock      func() time.Time
	DarkMode   bool
}

// NewAppState creates a state with no directory loaded. Call Navigate to
// root it.
func NewAppState(opts Options) *AppState {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ops := opts.Operations
	if ops == nil {
		ops = fileops.New(log)
	}
	searcher := opts.Searcher
	if searcher == nil {
		searcher = search.NewSearcher()
		searcher.OnSkip = opts.OnSkip
	}
	launcher := opts.Launcher
	if launcher == nil {
		launcher = nopLauncher{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	return &AppState{
		DarkMode: opts.DarkMode,
		ops:      ops,
		searcher: searcher,
		launcher: launcher,
		log:      log,
		onSkip:   opts.OnSkip,
		now:      clock,
	}
}

type nopLauncher struct{}

func (nopLauncher) Open(string) error         { return nil }
func (nopLauncher) OpenTerminal(string) error { return nil }

func (s *AppState) invalidateDisplay() {
	s.displayValid = false
	s.displayCache = nil
}

func (s *AppState) setStatus(msg string) {
	s.StatusMessage = msg
}

func (s *AppState) fail(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	s.log.Warn(msg, fields...)
	s.LastError = err
	s.StatusMessage = msg
}
