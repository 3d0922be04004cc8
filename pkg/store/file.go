package store

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/andersfylling/disgord"
	"github.com/qysp/reminderbot/pkg/common"
	"github.com/qysp/reminderbot/pkg/models"
)

const compactEvery = 500

// Journal operations.
const (
	opInsert      = "insert"
	opDeleteID    = "delete_id"
	opDeleteExact = "delete_exact"
)

type fileReminder struct {
	ID            uint64 `json:"id"`
	UserID        uint64 `json:"user_id"`
	Message       string `json:"message"`
	FireTimestamp int64  `json:"fire_timestamp"`
}

type journalRecord struct {
	Op       string       `json:"op"`
	Reminder fileReminder `json:"reminder"`
}

// fileStore is a dependency-free backend.
//
// Files:
//   - <prefix>.snapshot.json (full state, rewritten on compaction)
//   - <prefix>.journal.jsonl (append-only mutations since the snapshot)
type fileStore struct {
	log *common.Logger

	mu           sync.Mutex
	snapshotPath string
	journal      *os.File
	reminders    []models.Reminder
	writes       int
}

func openFile(path string, log *common.Logger) (Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, wrap("file", "open", errors.New("path is required"))
	}

	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	prefix := filepath.Join(dir, base)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, wrap("file", "open", err)
	}

	s := &fileStore{
		log:          log,
		snapshotPath: prefix + ".snapshot.json",
	}
	if err := s.loadSnapshot(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, wrap("file", "load snapshot", err)
	}
	journalPath := prefix + ".journal.jsonl"
	if err := s.replayJournal(journalPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, wrap("file", "replay journal", err)
	}

	jf, err := os.OpenFile(journalPath, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0o600)
	if err != nil {
		return nil, wrap("file", "open journal", err)
	}
	s.journal = jf

	log.Debug("opened file reminder store at", prefix, "with", len(s.reminders), "reminders")
	return s, nil
}

func (s *fileStore) Insert(ctx context.Context, r models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.appendLocked(opInsert, r); err != nil {
		return wrap("file", "insert", err)
	}
	s.apply(opInsert, r)
	return nil
}

func (s *fileStore) DeleteByID(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := models.Reminder{ID: id}
	if err := s.appendLocked(opDeleteID, r); err != nil {
		return wrap("file", "delete by id", err)
	}
	s.apply(opDeleteID, r)
	return nil
}

func (s *fileStore) DeleteExact(ctx context.Context, r models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.appendLocked(opDeleteExact, r); err != nil {
		return wrap("file", "delete exact", err)
	}
	s.apply(opDeleteExact, r)
	return nil
}

func (s *fileStore) ListAll(ctx context.Context) ([]models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Reminder(nil), s.reminders...), nil
}

func (s *fileStore) ListByUser(ctx context.Context, userID disgord.Snowflake) ([]models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Reminder
	for _, r := range s.reminders {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.journal == nil {
		return nil
	}
	err := s.compactLocked()
	if cerr := s.journal.Close(); err == nil {
		err = cerr
	}
	s.journal = nil
	return err
}

func (s *fileStore) apply(op string, r models.Reminder) {
	switch op {
	case opInsert:
		s.reminders = append(s.reminders, r)
	case opDeleteID:
		s.reminders = removeWhere(s.reminders, func(x models.Reminder) bool { return x.ID == r.ID })
	case opDeleteExact:
		s.reminders = removeWhere(s.reminders, func(x models.Reminder) bool { return x == r })
	}
}

func (s *fileStore) appendLocked(op string, r models.Reminder) error {
	if s.journal == nil {
		return errors.New("journal closed")
	}
	rec := journalRecord{Op: op, Reminder: toFileReminder(r)}
	if err := json.NewEncoder(s.journal).Encode(rec); err != nil {
		return err
	}
	s.writes++
	if s.writes%compactEvery == 0 {
		if err := s.compactLocked(); err != nil {
			s.log.Warn("reminder journal compaction failed:", err)
		}
	}
	return nil
}

// compactLocked writes the current state to the snapshot and truncates the journal.
func (s *fileStore) compactLocked() error {
	state := make([]fileReminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		state = append(state, toFileReminder(r))
	}

	tmp := s.snapshotPath + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(f).Encode(state); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.snapshotPath); err != nil {
		return err
	}

	if err := s.journal.Truncate(0); err != nil {
		return err
	}
	_, err = s.journal.Seek(0, 2)
	return err
}

func (s *fileStore) loadSnapshot() error {
	f, err := os.Open(s.snapshotPath)
	if err != nil {
		return err
	}
	defer f.Close()

	var state []fileReminder
	if err := json.NewDecoder(f).Decode(&state); err != nil {
		return err
	}
	for _, fr := range state {
		s.reminders = append(s.reminders, fr.reminder())
	}
	return nil
}

func (s *fileStore) replayJournal(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec journalRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			// A torn last line after a crash is skipped.
			continue
		}
		s.apply(rec.Op, rec.Reminder.reminder())
	}
	return sc.Err()
}

func toFileReminder(r models.Reminder) fileReminder {
	return fileReminder{
		ID:            r.ID,
		UserID:        uint64(r.UserID),
		Message:       r.Message,
		FireTimestamp: r.FireTimestamp,
	}
}

func (fr fileReminder) reminder() models.Reminder {
	return models.Reminder{
		ID:            fr.ID,
		UserID:        disgord.Snowflake(fr.UserID),
		Message:       fr.Message,
		FireTimestamp: fr.FireTimestamp,
	}
}

func removeWhere(rs []models.Reminder, match func(models.Reminder) bool) []models.Reminder {
	out := rs[:0]
	for _, r := range rs {
		if !match(r) {
			out = append(out, r)
		}
	}
	return out
}
