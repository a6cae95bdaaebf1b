package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// Environment overrides for the config location
const (
	// EnvConfigPath points at an explicit config file (highest priority)
	EnvConfigPath = "SR_GUI_CONFIG"

	// EnvPortable, when truthy, keeps the config in ./userdata next to the binary
	EnvPortable = "SR_GUI_PORTABLE"
)

const (
	configDirName  = "streamrip"
	configFileName = "config.toml"

	dirPermissions  = 0o755
	filePermissions = 0o644
)

// Manager owns the config file on disk. All accessors re-read the file so that
// edits made by the engine or another process are picked up; Snapshot freezes
// a view for the duration of a job.
type Manager struct {
	mu   sync.Mutex
	path string
}

// ResolvePath returns the config file location, in priority order:
// SR_GUI_CONFIG (explicit path), SR_GUI_PORTABLE=1 (./userdata/config.toml
// next to the executable), then the per-user config directory.
func ResolvePath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	if isTruthy(os.Getenv(EnvPortable)) {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("resolve portable config path: %w", err)
		}
		return filepath.Join(filepath.Dir(exe), "userdata", configFileName), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, configDirName, configFileName), nil
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// NewManager creates a manager for the config at path, resolving the default
// location when path is empty, and writes a default config if none exists.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		resolved, err := ResolvePath()
		if err != nil {
			return nil, err
		}
		path = resolved
	}
	m := &Manager{path: path}
	if err := m.ensureExists(); err != nil {
		return nil, err
	}
	return m, nil
}

// Path returns the location of the managed config file
func (m *Manager) Path() string {
	return m.path
}

// ensureExists writes the default config when the file is missing
func (m *Manager) ensureExists() error {
	if _, err := os.Stat(m.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config: %w", err)
	}
	folder := defaultOutputFolder()
	return m.Save(defaultFile(folder))
}

// defaultOutputFolder picks a per-user music downloads folder
func defaultOutputFolder() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "StreamripDownloads"
	}
	return filepath.Join(home, "StreamripDownloads")
}

// Load reads and decodes the config file
func (m *Manager) Load() (*File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadLocked()
}

func (m *Manager) loadLocked() (*File, error) {
	var f File
	if _, err := toml.DecodeFile(m.path, &f); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", m.path, err)
	}
	return &f, nil
}

// Save encodes f to the config file, creating parent directories as needed
func (m *Manager) Save(f *File) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked(f)
}

func (m *Manager) saveLocked(f *File) error {
	if err := os.MkdirAll(filepath.Dir(m.path), dirPermissions); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(f); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(m.path, []byte(b.String()), filePermissions); err != nil {
		return fmt.Errorf("write config %s: %w", m.path, err)
	}
	return nil
}

// Snapshot returns the frozen view of config a job start consumes
func (m *Manager) Snapshot() (*Snapshot, error) {
	f, err := m.Load()
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		OutputFolder: f.Downloads.Folder,
		Qobuz:        f.Qobuz,
		Deezer:       f.Deezer,
	}, nil
}

// OutputFolder returns the configured download folder, or "" if the config
// cannot be read
func (m *Manager) OutputFolder() string {
	f, err := m.Load()
	if err != nil {
		return ""
	}
	return f.Downloads.Folder
}

// SetOutputFolder updates the download folder and saves the file
func (m *Manager) SetOutputFolder(folder string) error {
	return m.update(func(f *File) {
		f.Downloads.Folder = folder
	})
}

// SetQobuzCredentials updates the Qobuz identifier and password/token pair
func (m *Manager) SetQobuzCredentials(emailOrUserID, passwordOrToken string) error {
	return m.update(func(f *File) {
		f.Qobuz.EmailOrUserID = emailOrUserID
		f.Qobuz.PasswordOrToken = passwordOrToken
	})
}

// SetDeezerARL updates the Deezer ARL session cookie
func (m *Manager) SetDeezerARL(arl string) error {
	return m.update(func(f *File) {
		f.Deezer.ARL = arl
	})
}

// Version returns the config schema version, or "unknown" when unreadable
func (m *Manager) Version() string {
	f, err := m.Load()
	if err != nil || f.Misc.Version == "" {
		return "unknown"
	}
	return f.Misc.Version
}

// update applies fn to the decoded file and writes it back under one lock
func (m *Manager) update(fn func(*File)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.loadLocked()
	if err != nil {
		return err
	}
	fn(f)
	return m.saveLocked(f)
}
