package progress

import (
	"time"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/exercise"
)

// FormatVersion is stamped on every saved document. Documents from a newer
// major version are not read.
const FormatVersion = "v1.0.0"

// MaxContentHistory caps the per-kind history of practised content.
const MaxContentHistory = 50

// CharacterProgress tracks individual kana for one script.
type CharacterProgress struct {
	Learned     []string `json:"learned"`
	Mastered    []string `json:"mastered"`
	NeedsReview []string `json:"needsReview"`
}

// StudySession is one sitting, opened by StartSession and closed by
// EndSession. Attempts and Correct count results recorded while it was open.
type StudySession struct {
	ID         string            `json:"id"`
	Difficulty corpus.Difficulty `json:"difficulty"`
	StartedAt  time.Time         `json:"startedAt"`
	EndedAt    *time.Time        `json:"endedAt,omitempty"`
	Attempts   int               `json:"attempts"`
	Correct    int               `json:"correct"`
}

// Statistics holds learner-wide counters.
type Statistics struct {
	CorrectAnswers int            `json:"correctAnswers"`
	TotalAttempts  int            `json:"totalAttempts"`
	StudySessions  []StudySession `json:"studySessions"`
	LastActive     *time.Time     `json:"lastActive"`
}

// Settings are learner preferences. Reset keeps them.
type Settings struct {
	DailyGoalMinutes int               `json:"dailyGoalMinutes" validate:"gte=1,lte=480"`
	Difficulty       corpus.Difficulty `json:"difficulty" validate:"oneof=beginner intermediate advanced"`
	Interests        []string          `json:"interests" validate:"max=10,dive,required,max=40"`
}

// DefaultSettings returns the settings of a new learner.
func DefaultSettings() Settings {
	return Settings{DailyGoalMinutes: 15, Difficulty: corpus.Beginner}
}

// HistoryEntry records one practised item by hash.
type HistoryEntry struct {
	ContentHash string    `json:"contentHash"`
	Timestamp   time.Time `json:"timestamp"`
	Success     bool      `json:"success"`
}

// PracticeStat is the record for one (difficulty, kind) pair.
type PracticeStat struct {
	Attempts       int            `json:"attempts"`
	Correct        int            `json:"correct"`
	LastPracticed  *time.Time     `json:"lastPracticed"`
	ContentHistory []HistoryEntry `json:"contentHistory"`
}

// KindStats is the summary of a PracticeStat returned by Stats.
type KindStats struct {
	Attempts      int
	Correct       int
	LastPracticed *time.Time
}

// Accuracy returns Correct/Attempts, or 0 before the first attempt.
func (k KindStats) Accuracy() float64 {
	if k.Attempts == 0 {
		return 0
	}
	return float64(k.Correct) / float64(k.Attempts)
}

// Stats maps difficulty to kind to counters.
type Stats map[corpus.Difficulty]map[exercise.Kind]KindStats

// Summary is the learner-wide overview.
type Summary struct {
	HiraganaLearned  int
	HiraganaMastered int
	KatakanaLearned  int
	KatakanaMastered int
	CorrectAnswers   int
	TotalAttempts    int
	Sessions         int

	// Accuracy is a percentage rounded to two decimals.
	Accuracy   float64
	LastActive *time.Time
}

type document struct {
	Version       string                                                `json:"version"`
	Hiragana      CharacterProgress                                     `json:"hiragana"`
	Katakana      CharacterProgress                                     `json:"katakana"`
	Statistics    Statistics                                            `json:"statistics"`
	Settings      Settings                                              `json:"settings"`
	PracticeStats map[corpus.Difficulty]map[exercise.Kind]*PracticeStat `json:"practiceStats"`
}

func newDocument(settings Settings) *document {
	return &document{
		Version:       FormatVersion,
		Settings:      settings,
		PracticeStats: make(map[corpus.Difficulty]map[exercise.Kind]*PracticeStat),
	}
}

// normalize fills the gaps an older or hand-edited document may have.
func (d *document) normalize() {
	if d.PracticeStats == nil {
		d.PracticeStats = make(map[corpus.Difficulty]map[exercise.Kind]*PracticeStat)
	}
	for diff, kinds := range d.PracticeStats {
		if kinds == nil {
			delete(d.PracticeStats, diff)
			continue
		}
		for k, st := range kinds {
			if st == nil {
				delete(kinds, k)
			}
		}
	}
	def := DefaultSettings()
	if d.Settings.DailyGoalMinutes <= 0 {
		d.Settings.DailyGoalMinutes = def.DailyGoalMinutes
	}
	if !d.Settings.Difficulty.Valid() {
		d.Settings.Difficulty = def.Difficulty
	}
}

func (d *document) characters(s corpus.Script) *CharacterProgress {
	if s == corpus.Katakana {
		return &d.Katakana
	}
	return &d.Hiragana
}
