package inventory

import (
	"errors"

	"github.com/example/lesson-shop/internal/catalog"
)

var (
	ErrNoCapacity    = errors.New("no spaces available")
	ErrUnknownLesson = errors.New("lesson not found")
)

// Ledger tracks per-lesson capacity for the current catalog snapshot.
// A reserved unit moves from available spaces to held; released units
// move back. Spaces + held stays constant for a lesson across any
// reserve/release sequence.
type Ledger struct {
	lessons map[string]*catalog.Lesson
	held    map[string]int
}

func NewLedger() *Ledger {
	return &Ledger{
		lessons: make(map[string]*catalog.Lesson),
		held:    make(map[string]int),
	}
}

// Load rebuilds the ledger over a catalog snapshot. Held counts reset:
// the catalog is replaced wholesale on refresh, so prior holds refer
// to lessons that no longer exist locally.
func (l *Ledger) Load(lessons []catalog.Lesson) {
	l.lessons = make(map[string]*catalog.Lesson, len(lessons))
	l.held = make(map[string]int, len(lessons))
	for i := range lessons {
		l.lessons[lessons[i].ID] = &lessons[i]
	}
}

// Reserve takes one unit of capacity. It fails with ErrNoCapacity when
// no spaces remain and mutates nothing on failure.
func (l *Ledger) Reserve(id string) error {
	lesson, ok := l.lessons[id]
	if !ok {
		return ErrUnknownLesson
	}
	if lesson.Spaces <= 0 {
		return ErrNoCapacity
	}
	lesson.Spaces--
	l.held[id]++
	return nil
}

// Release returns one unit of capacity. There is no upper bound tied
// to the original capacity: releasing a unit that was never reserved
// over-credits the lesson.
func (l *Ledger) Release(id string) {
	lesson, ok := l.lessons[id]
	if !ok {
		return
	}
	lesson.Spaces++
	l.held[id]--
}

// Lesson returns a copy of the tracked lesson.
func (l *Ledger) Lesson(id string) (catalog.Lesson, bool) {
	lesson, ok := l.lessons[id]
	if !ok {
		return catalog.Lesson{}, false
	}
	return *lesson, true
}

// Held reports how many units of a lesson are currently reserved.
func (l *Ledger) Held(id string) int {
	return l.held[id]
}
