// Package catalog serializes a normalized catalog and writes it with a backup of the previous file.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"catalogo/internal/logger"
	"catalogo/internal/models"
	"catalogo/pkg/checksum"
)

// backupStamp is the timestamp layout used in backup file names.
const backupStamp = "20060102_150405"

// Writer errors.
var (
	ErrNilCatalog     = errors.New("catalog is nil")
	ErrBackupFailed   = errors.New("failed to back up existing output")
	ErrBackupMismatch = errors.New("backup content differs from existing output")
	ErrWriteFailed    = errors.New("failed to write output")
)

// Encode serializes c as a 2-space indented JSON array. Non-ASCII and HTML
// characters are written literally. The result has no trailing newline.
func Encode(c *models.Catalog) ([]byte, error) {
	if c == nil {
		return nil, ErrNilCatalog
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// maxBackupAttempts bounds the numbered names tried when a backup name is taken.
const maxBackupAttempts = 100

// BackupPath returns the backup name for output at time now:
// "<stem>_backup_<YYYYMMDD_HHMMSS><ext>" in the same directory.
func BackupPath(output string, now time.Time) string {
	return numberedBackupPath(output, now, 0)
}

// numberedBackupPath returns BackupPath for n == 0 and
// "<stem>_backup_<YYYYMMDD_HHMMSS>_<n><ext>" otherwise.
func numberedBackupPath(output string, now time.Time, n int) string {
	dir := filepath.Dir(output)
	ext := filepath.Ext(output)
	stem := strings.TrimSuffix(filepath.Base(output), ext)

	name := fmt.Sprintf("%s_backup_%s", stem, now.Format(backupStamp))
	if n > 0 {
		name += "_" + strconv.Itoa(n)
	}

	return filepath.Join(dir, name+ext)
}

// WriteResult describes what Write did.
type WriteResult struct {
	Path       string
	BackupPath string
	Checksum   string
	Bytes      int
}

// Writer writes catalog files.
type Writer struct {
	log    *logger.Logger
	now    func() time.Time
	backup bool
}

// NewWriter creates a writer. When backup is true an existing output file is
// copied aside before it is replaced.
func NewWriter(backup bool, log *logger.Logger) *Writer {
	return &Writer{backup: backup, log: log, now: time.Now}
}

// WithClock replaces the clock used for backup names.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now

	return w
}

// Write replaces path with data. If path exists and backups are enabled its
// bytes are first copied to BackupPath and verified; the new content is then
// written to a temporary file in the same directory and renamed over path.
func (w *Writer) Write(path string, data []byte) (*WriteResult, error) {
	result := &WriteResult{Path: path, Bytes: len(data), Checksum: checksum.Sum(data)}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	if w.backup {
		backupPath, err := w.backupExisting(path)
		if err != nil {
			return nil, err
		}

		result.BackupPath = backupPath
	}

	if err := writeAtomic(path, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	w.log.Debug("Catalog written", "path", path, "bytes", len(data), "sha256", result.Checksum)

	return result, nil
}

// backupExisting copies path aside. It returns "" when there is nothing to back up.
func (w *Writer) backupExisting(path string) (string, error) {
	existing, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackupFailed, err)
	}

	backupPath, err := createBackup(path, w.now(), existing)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackupFailed, err)
	}

	if err := checksum.Verify(backupPath, checksum.Sum(existing)); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackupMismatch, err)
	}

	w.log.Debug("Backup created", "from", path, "to", backupPath, "bytes", len(existing))

	return backupPath, nil
}

// createBackup writes data to the first free backup name. Existing backups are
// never replaced.
func createBackup(output string, now time.Time, data []byte) (string, error) {
	for n := 0; n < maxBackupAttempts; n++ {
		candidate := numberedBackupPath(output, now, n)

		f, err := os.OpenFile(candidate, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}

		if err != nil {
			return "", err
		}

		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(candidate)

			return "", err
		}

		if err := f.Close(); err != nil {
			os.Remove(candidate)

			return "", err
		}

		return candidate, nil
	}

	return "", fmt.Errorf("no free backup name after %d attempts", maxBackupAttempts)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return err
	}

	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)

		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)

		return err
	}

	return nil
}
