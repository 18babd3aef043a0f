// Package progress keeps the learner's practice record: per-kind counters
// and content history, kana character lists, study sessions and settings.
//
// The whole record is one JSON document written through a store.Document
// after every change. Write failures are logged and otherwise ignored; the
// in-memory state stays authoritative for the rest of the process.
package progress

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/exercise"
	"github.com/shioubi0216/ToneMasterAI/internal/store"
)

// ErrUnknownSession is returned by EndSession for an ID that is not open.
var ErrUnknownSession = errors.New("unknown or closed study session")

// Store is the single writer of learner state. It is safe for concurrent
// use.
type Store struct {
	mu       sync.Mutex
	doc      store.Document
	log      *zap.Logger
	now      func() time.Time
	validate *validator.Validate
	state    *document
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open reads the learner document and returns a ready Store. It never
// fails: a missing document starts from defaults and is written at once, a
// corrupt one is replaced by defaults, and a document from a newer format
// version is ignored. A nil doc keeps everything in memory.
func Open(ctx context.Context, doc store.Document, log *zap.Logger, opts ...Option) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		doc:      doc,
		log:      log,
		now:      time.Now,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) *document {
	if s.doc == nil {
		return newDocument(DefaultSettings())
	}

	data, err := s.doc.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		d := newDocument(DefaultSettings())
		s.persistDoc(ctx, d)
		return d
	}
	if err != nil {
		s.log.Warn("could not read progress, starting fresh", zap.Error(err))
		return newDocument(DefaultSettings())
	}

	var d document
	if err := json.Unmarshal(data, &d); err != nil {
		s.log.Warn("progress document is corrupt, reinitializing", zap.Error(err))
		fresh := newDocument(DefaultSettings())
		s.persistDoc(ctx, fresh)
		return fresh
	}
	if d.Version != "" {
		if !semver.IsValid(d.Version) {
			s.log.Warn("progress document has an invalid version, reinitializing",
				zap.String("version", d.Version))
			fresh := newDocument(DefaultSettings())
			s.persistDoc(ctx, fresh)
			return fresh
		}
		if semver.Compare(semver.Major(d.Version), semver.Major(FormatVersion)) > 0 {
			s.log.Warn("progress document is from a newer version, ignoring it",
				zap.String("version", d.Version),
				zap.String("supported", FormatVersion))
			return newDocument(DefaultSettings())
		}
	}
	d.normalize()
	return &d
}

// persist writes the current state. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) {
	s.persistDoc(ctx, s.state)
}

func (s *Store) persistDoc(ctx context.Context, d *document) {
	if s.doc == nil {
		return
	}
	d.Version = FormatVersion
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		s.log.Error("encode progress", zap.Error(err))
		return
	}
	if err := s.doc.Save(ctx, data); err != nil {
		s.log.Error("save progress", zap.Error(err))
	}
}

// ContentHash identifies practised content without storing it.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])[:16]
}

// RecordResult counts one attempt of kind at difficulty d. Empty content is
// counted but not added to the history.
func (s *Store) RecordResult(ctx context.Context, d corpus.Difficulty, kind exercise.Kind, success bool, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	st := &s.state.Statistics
	st.TotalAttempts++
	if success {
		st.CorrectAnswers++
	}
	st.LastActive = &now
	if sess := s.openSession(); sess != nil {
		sess.Attempts++
		if success {
			sess.Correct++
		}
	}

	kinds := s.state.PracticeStats[d]
	if kinds == nil {
		kinds = make(map[exercise.Kind]*PracticeStat)
		s.state.PracticeStats[d] = kinds
	}
	ps := kinds[kind]
	if ps == nil {
		ps = &PracticeStat{}
		kinds[kind] = ps
	}
	ps.Attempts++
	if success {
		ps.Correct++
	}
	ps.LastPracticed = &now

	if content != "" {
		ps.ContentHistory = append(ps.ContentHistory, HistoryEntry{
			ContentHash: ContentHash(content),
			Timestamp:   now,
			Success:     success,
		})
		if over := len(ps.ContentHistory) - MaxContentHistory; over > 0 {
			ps.ContentHistory = slices.Clone(ps.ContentHistory[over:])
		}
	}

	s.persist(ctx)
}

// Stats returns a copy of every recorded counter.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(Stats, len(s.state.PracticeStats))
	for d, kinds := range s.state.PracticeStats {
		m := make(map[exercise.Kind]KindStats, len(kinds))
		for k, ps := range kinds {
			ks := KindStats{Attempts: ps.Attempts, Correct: ps.Correct}
			if ps.LastPracticed != nil {
				t := *ps.LastPracticed
				ks.LastPracticed = &t
			}
			m[k] = ks
		}
		out[d] = m
	}
	return out
}

// History returns the recent content history for one kind, oldest first.
func (s *Store) History(d corpus.Difficulty, kind exercise.Kind) []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	ps := s.state.PracticeStats[d][kind]
	if ps == nil {
		return nil
	}
	return slices.Clone(ps.ContentHistory)
}

// Reset clears counters, history, characters and sessions. Settings are
// kept.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.state.Settings
	settings.Interests = slices.Clone(settings.Interests)
	s.state = newDocument(settings)
	s.persist(ctx)
}

// RecordCharacter updates the kana lists for one answer: every answered
// symbol is learned, a correct answer masters it and clears it from review,
// a wrong one demotes it to review.
func (s *Store) RecordCharacter(ctx context.Context, script corpus.Script, symbol string, correct bool) error {
	script, err := corpus.ParseScript(string(script))
	if err != nil {
		return err
	}
	if symbol == "" {
		return fmt.Errorf("empty character")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := s.state.characters(script)
	cp.Learned = addUnique(cp.Learned, symbol)
	if correct {
		cp.Mastered = addUnique(cp.Mastered, symbol)
		cp.NeedsReview = remove(cp.NeedsReview, symbol)
	} else {
		cp.NeedsReview = addUnique(cp.NeedsReview, symbol)
		cp.Mastered = remove(cp.Mastered, symbol)
	}
	now := s.now().UTC()
	s.state.Statistics.LastActive = &now

	s.persist(ctx)
	return nil
}

// NeedsReview returns up to n characters marked for review, oldest first.
func (s *Store) NeedsReview(script corpus.Script, n int) ([]string, error) {
	script, err := corpus.ParseScript(string(script))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.state.characters(script).NeedsReview
	if n >= 0 && n < len(list) {
		list = list[:n]
	}
	return slices.Clone(list), nil
}

// Summary returns the learner-wide overview.
func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state.Statistics
	sum := Summary{
		HiraganaLearned:  len(s.state.Hiragana.Learned),
		HiraganaMastered: len(s.state.Hiragana.Mastered),
		KatakanaLearned:  len(s.state.Katakana.Learned),
		KatakanaMastered: len(s.state.Katakana.Mastered),
		CorrectAnswers:   st.CorrectAnswers,
		TotalAttempts:    st.TotalAttempts,
		Sessions:         len(st.StudySessions),
	}
	if st.TotalAttempts > 0 {
		pct := float64(st.CorrectAnswers) / float64(st.TotalAttempts) * 100
		sum.Accuracy = math.Round(pct*100) / 100
	}
	if st.LastActive != nil {
		t := *st.LastActive
		sum.LastActive = &t
	}
	return sum
}

// StartSession opens a study session and returns its ID. Results recorded
// until EndSession are tallied on it.
func (s *Store) StartSession(ctx context.Context, d corpus.Difficulty) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.state.Statistics.StudySessions = append(s.state.Statistics.StudySessions, StudySession{
		ID:         id,
		Difficulty: d,
		StartedAt:  s.now().UTC(),
	})
	s.persist(ctx)
	return id
}

// EndSession closes the session and returns its final tally.
func (s *Store) EndSession(ctx context.Context, id string) (StudySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.state.Statistics.StudySessions
	for i := range sessions {
		if sessions[i].ID != id {
			continue
		}
		if sessions[i].EndedAt != nil {
			break
		}
		now := s.now().UTC()
		sessions[i].EndedAt = &now
		s.persist(ctx)
		return sessions[i], nil
	}
	return StudySession{}, fmt.Errorf("%w: %s", ErrUnknownSession, id)
}

// openSession returns the most recently started session that is still
// open. Callers hold s.mu.
func (s *Store) openSession() *StudySession {
	sessions := s.state.Statistics.StudySessions
	for i := len(sessions) - 1; i >= 0; i-- {
		if sessions[i].EndedAt == nil {
			return &sessions[i]
		}
	}
	return nil
}

// Settings returns a copy of the learner settings.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state.Settings
	out.Interests = slices.Clone(out.Interests)
	return out
}

// UpdateSettings applies fn to a copy of the settings and stores the result
// if it passes validation.
func (s *Store) UpdateSettings(ctx context.Context, fn func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Settings
	next.Interests = slices.Clone(next.Interests)
	fn(&next)
	if err := s.validate.Struct(next); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	s.state.Settings = next
	s.persist(ctx)
	return nil
}

func addUnique(list []string, v string) []string {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}

func remove(list []string, v string) []string {
	return slices.DeleteFunc(list, func(s string) bool { return s == v })
}
