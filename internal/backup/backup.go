// Package backup keeps timestamped copies of the config file next to it.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/agenda/internal/logger"
)

const (
	// MaxBackups is the maximum number of backups to keep
	MaxBackups = 5
	// DirName is the name of the backup directory
	DirName = "backups"
)

var timestampLayouts = []string{"20060102-1504", "20060102-150405"}

// Info contains information about a backup file
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager backs up a single file into <dir>/backups.
type Manager struct {
	path   string
	dir    string
	prefix string
	suffix string
}

func NewManager(path string) *Manager {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)
	return &Manager{
		path:   path,
		dir:    filepath.Join(filepath.Dir(path), DirName),
		prefix: base + "-",
		suffix: ext,
	}
}

// Dir returns the backup directory path
func (m *Manager) Dir() string {
	return m.dir
}

// CreateBackup copies the file into the backup directory and rotates old
// copies. It returns the new backup's path.
func (m *Manager) CreateBackup() (string, error) {
	if _, err := os.Stat(m.path); err != nil {
		return "", fmt.Errorf("nothing to back up: %w", err)
	}
	if err := os.MkdirAll(m.dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath, err := m.nextName(time.Now())
	if err != nil {
		return "", err
	}
	if err := copyFile(m.path, backupPath); err != nil {
		return "", fmt.Errorf("failed to copy %s: %w", m.path, err)
	}

	if err := m.rotate(); err != nil {
		logger.Warn("failed to rotate old backups", "dir", m.dir, "error", err)
	}
	return backupPath, nil
}

// nextName picks an unused file name, falling back to second precision and
// then a counter.
func (m *Manager) nextName(now time.Time) (string, error) {
	for _, layout := range timestampLayouts {
		p := filepath.Join(m.dir, m.prefix+now.Format(layout)+m.suffix)
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return p, nil
		}
	}
	stamp := now.Format(timestampLayouts[len(timestampLayouts)-1])
	for counter := 1; counter <= 100; counter++ {
		p := filepath.Join(m.dir, fmt.Sprintf("%s%s-%d%s", m.prefix, stamp, counter, m.suffix))
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return p, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique backup filename")
}

// ListBackups returns every backup, newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, m.prefix) || !strings.HasSuffix(name, m.suffix) {
			continue
		}
		ts, counter, ok := m.parseName(name)
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path: filepath.Join(m.dir, name),
			// counters only break ties within the same second
			Timestamp: ts.Add(time.Duration(counter) * time.Nanosecond),
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func (m *Manager) parseName(name string) (time.Time, int, bool) {
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, m.prefix), m.suffix)

	counter := 0
	if parts := strings.Split(stamp, "-"); len(parts) == 3 {
		if _, err := fmt.Sscanf(parts[2], "%d", &counter); err != nil {
			return time.Time{}, 0, false
		}
		stamp = parts[0] + "-" + parts[1]
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return ts, counter, true
		}
	}
	return time.Time{}, 0, false
}

// rotate removes backups beyond MaxBackups.
func (m *Manager) rotate() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
