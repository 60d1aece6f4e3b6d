package availability

import (
	"sort"
	"time"
)

// Window полуоткрытый интервал [Start, End)
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow окно длительностью d от start
func NewWindow(start time.Time, d time.Duration) Window {
	return Window{Start: start, End: start.Add(d)}
}

// IsEmpty окно не содержит ни одного момента
func (w Window) IsEmpty() bool {
	return !w.Start.Before(w.End)
}

// Overlaps интервалы имеют общий момент: a.start < b.end && b.start < a.end.
// Соприкасающиеся интервалы не пересекаются.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// Contains start <= t < end
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Covers inner целиком лежит внутри w
func (w Window) Covers(inner Window) bool {
	return !inner.Start.Before(w.Start) && !inner.End.After(w.End)
}

func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Subtract возвращает части w, не занятые holes, по возрастанию.
// Дыры могут пересекаться и выходить за границы w.
func Subtract(w Window, holes ...Window) []Window {
	if w.IsEmpty() {
		return nil
	}

	sorted := make([]Window, 0, len(holes))
	for _, h := range holes {
		if !h.IsEmpty() && h.Overlaps(w) {
			sorted = append(sorted, h)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	free := make([]Window, 0, len(sorted)+1)
	cursor := w.Start
	for _, h := range sorted {
		if h.Start.After(cursor) {
			free = append(free, Window{Start: cursor, End: h.Start})
		}
		if h.End.After(cursor) {
			cursor = h.End
		}
		if !cursor.Before(w.End) {
			return free
		}
	}
	if cursor.Before(w.End) {
		free = append(free, Window{Start: cursor, End: w.End})
	}
	return free
}

func overlapsAny(w Window, others []Window) bool {
	for _, o := range others {
		if w.Overlaps(o) {
			return true
		}
	}
	return false
}

func containedInAny(t time.Time, windows []Window) bool {
	for _, o := range windows {
		if o.Contains(t) {
			return true
		}
	}
	return false
}
