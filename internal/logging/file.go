package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	logFileName = "formal.log"
	logFilePerm = 0o600
	logDirPerm  = 0o750
)

// FileConfig controls the optional rotating log file.
type FileConfig struct {
	Enabled       bool
	Dir           string
	MaxSizeMB     int
	MaxBackups    int
	MaxAgeDays    int
	Compress      bool
	WriteToStderr bool
}

// NewWithFile builds a logger that writes to stderr, a rotating file, or both.
// The returned cleanup closes the file and is always safe to call.
func NewWithFile(cfg Config, fileCfg FileConfig) (zerolog.Logger, func(), error) {
	if !fileCfg.Enabled {
		if !fileCfg.WriteToStderr {
			cfg.Output = io.Discard
		}
		return New(cfg), func() {}, nil
	}

	sink, err := NewFileSink(fileCfg.Dir, fileCfg.MaxSizeMB, fileCfg.MaxBackups, fileCfg.MaxAgeDays, fileCfg.Compress)
	if err != nil {
		return New(cfg), func() {}, err
	}

	// Files always get JSON lines; the console format is for terminals.
	var out io.Writer = sink
	if fileCfg.WriteToStderr {
		var stderr io.Writer = os.Stderr
		if cfg.Format == "console" || cfg.Format == "text" {
			stderr = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: cfg.TimeFormat}
		}
		out = zerolog.MultiLevelWriter(stderr, sink)
	}

	logger := zerolog.New(out).Level(cfg.Level).With().Timestamp().Logger()
	cleanup := func() {
		if err := sink.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close log file: %v\n", err)
		}
	}
	return logger, cleanup, nil
}

// FileSink is an io.Writer over formal.log that rotates by size and prunes
// old backups by age and count.
type FileSink struct {
	mu         sync.Mutex
	dir        string
	maxSize    int64
	maxAge     time.Duration
	maxBackups int
	compress   bool
	file       *os.File
	size       int64
}

// NewFileSink opens (or creates) formal.log in dir.
func NewFileSink(dir string, maxSizeMB, maxBackups, maxAgeDays int, compress bool) (*FileSink, error) {
	if dir == "" {
		return nil, fmt.Errorf("log directory cannot be empty")
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	s := &FileSink{
		dir:        dir,
		maxSize:    int64(maxSizeMB) * 1024 * 1024,
		maxAge:     time.Duration(maxAgeDays) * 24 * time.Hour,
		maxBackups: maxBackups,
		compress:   compress,
	}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the active log file path.
func (s *FileSink) Path() string {
	return filepath.Join(s.dir, logFileName)
}

func (s *FileSink) open() error {
	if info, err := os.Stat(s.Path()); err == nil {
		s.size = info.Size()
	}
	f, err := os.OpenFile(s.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	s.file = f
	return nil
}

func (s *FileSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		if err := s.open(); err != nil {
			return 0, err
		}
	}
	if s.size > 0 && s.size+int64(len(p)) > s.maxSize {
		if err := s.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := s.file.Write(p)
	s.size += int64(n)
	return n, err
}

func (s *FileSink) rotate() error {
	if err := s.file.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to close log file: %v\n", err)
	}
	s.file = nil

	backup := s.Path() + "." + time.Now().Format("2006-01-02-15-04-05.000")
	if err := os.Rename(s.Path(), backup); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}
	if s.compress {
		if err := gzipFile(backup); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to compress %s: %v\n", backup, err)
		} else if err := os.Remove(backup); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove %s: %v\n", backup, err)
		}
	}
	s.prune()

	s.size = 0
	return s.open()
}

func gzipFile(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(path+".gz", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, logFilePerm)
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(out)
	if _, err := io.Copy(zw, in); err != nil {
		_ = zw.Close()
		_ = out.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// prune removes backups older than maxAge, then the oldest beyond maxBackups.
func (s *FileSink) prune() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}

	type backup struct {
		name    string
		modTime time.Time
	}
	var backups []backup
	now := time.Now()
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), logFileName+".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if s.maxAge > 0 && now.Sub(info.ModTime()) > s.maxAge {
			_ = os.Remove(filepath.Join(s.dir, e.Name()))
			continue
		}
		backups = append(backups, backup{name: e.Name(), modTime: info.ModTime()})
	}

	if s.maxBackups <= 0 || len(backups) <= s.maxBackups {
		return
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].modTime.Before(backups[j].modTime)
	})
	for _, b := range backups[:len(backups)-s.maxBackups] {
		_ = os.Remove(filepath.Join(s.dir, b.name))
	}
}

// Close closes the active file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
