package platform

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
)

// File permissions
const (
	DefaultDirPermissions = 0o755
)

// File manager commands
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// EnsureDir creates dir and any missing parents
func EnsureDir(dir string) error {
	if dir == "" {
		return errors.New("empty directory path")
	}
	return os.MkdirAll(dir, DefaultDirPermissions)
}

// OpenInFileManager opens dir in the system file manager
func OpenInFileManager(dir string) error {
	if dir == "" {
		return errors.New("empty directory path")
	}
	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, dir).Start()
	case OSWindows:
		return exec.Command(ExplorerCommand, dir).Start()
	default:
		return exec.Command(XDGOpenCommand, dir).Start()
	}
}
