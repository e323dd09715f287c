package fileops

import "github.com/boostgo/errorx"

// Error codes carried by the errors this package returns.
const (
	codeDelete             = "fileops.delete"
	codeCopy               = "fileops.copy"
	codeCopyIntoSelf       = "fileops.copy.into_self"
	codeCopySameFile       = "fileops.copy.same_file"
	codeRename             = "fileops.rename"
	codeRenameTargetExists = "fileops.rename.target_exists"
	codeCreateDirectory    = "fileops.create_directory"
	codeInvalidName        = "fileops.invalid_name"
)

type pathErrorContext struct {
	Path  string `json:"path"`
	Error error  `json:"error"`
}

type moveErrorContext struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Error       error  `json:"error"`
}

func newPathError(code, path string, err error) error {
	data := pathErrorContext{Path: path, Error: err}
	if err == nil {
		return errorx.New(code).SetData(data)
	}
	return errorx.New(code).SetError(err).SetData(data)
}

func newMoveError(code, source, destination string, err error) error {
	data := moveErrorContext{Source: source, Destination: destination, Error: err}
	if err == nil {
		return errorx.New(code).SetData(data)
	}
	return errorx.New(code).SetError(err).SetData(data)
}
