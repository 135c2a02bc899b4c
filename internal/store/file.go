package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/ace-ranking/internal/club"
)

var _ club.Repository = (*FileStore)(nil)

// NewFile returns a repository that keeps its JSON blobs in dir.
func NewFile(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Load reads the three blobs. A missing file leaves its collection nil.
func (s *FileStore) Load(ctx context.Context) (club.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var state club.State
	found, err := s.read(MembersFile, &state.Members)
	if err != nil {
		return club.State{}, err
	}
	if found && state.Members == nil {
		state.Members = []club.Member{}
	}

	found, err = s.read(MatchesFile, &state.Matches)
	if err != nil {
		return club.State{}, err
	}
	if found && state.Matches == nil {
		state.Matches = []club.MatchResult{}
	}

	found, err = s.read(AttendanceFile, &state.Attendance)
	if err != nil {
		return club.State{}, err
	}
	if found && state.Attendance == nil {
		state.Attendance = club.Attendance{}
	}

	log.Debug("Loaded club state from files", "dir", s.dir, "members", len(state.Members), "matches", len(state.Matches))
	return state, nil
}

// Save rewrites every blob. Each file is replaced atomically.
func (s *FileStore) Save(ctx context.Context, state club.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	members := state.Members
	if members == nil {
		members = []club.Member{}
	}
	matches := state.Matches
	if matches == nil {
		matches = []club.MatchResult{}
	}
	attendance := state.Attendance
	if attendance == nil {
		attendance = club.Attendance{}
	}

	if err := s.write(MembersFile, members); err != nil {
		return err
	}
	if err := s.write(MatchesFile, matches); err != nil {
		return err
	}
	return s.write(AttendanceFile, attendance)
}

func (s *FileStore) read(name string, target any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return true, nil
}

func (s *FileStore) write(name string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
