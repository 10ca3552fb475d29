package cart

import "errors"

var ErrBadIndex = errors.New("cart index out of range")

// Line is one reserved unit of a lesson. The cart is an ordered
// sequence of lines, one per unit added; the same lesson appears as
// repeated entries rather than a quantity.
type Line struct {
	LessonID string  `json:"lessonId"`
	Subject  string  `json:"subject"`
	Location string  `json:"location"`
	Price    float64 `json:"price"`
	Spaces   int     `json:"spaces"`
}

// Group is the display aggregation of lines sharing a subject. The
// first-seen line supplies everything but the count.
type Group struct {
	Subject   string  `json:"subject"`
	Location  string  `json:"location"`
	UnitPrice float64 `json:"unitPrice"`
	Spaces    int     `json:"spaces"`
	Count     int     `json:"count"`
}

// Cart holds the ordered line sequence.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) Add(line Line) {
	c.lines = append(c.lines, line)
}

// RemoveAt removes and returns the line at index.
func (c *Cart) RemoveAt(index int) (Line, error) {
	if index < 0 || index >= len(c.lines) {
		return Line{}, ErrBadIndex
	}
	line := c.lines[index]
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return line, nil
}

// RemoveFirstBySubject removes the first line whose subject matches.
// No match is a no-op, not an error.
func (c *Cart) RemoveFirstBySubject(subject string) (Line, bool) {
	for i, line := range c.lines {
		if line.Subject == subject {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return line, true
		}
	}
	return Line{}, false
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy of the line sequence.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total is the sum of line prices.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Price
	}
	return total
}

// Grouped projects the line sequence into subject-keyed groups, in
// first-appearance order. Always recomputed from the current lines.
func (c *Cart) Grouped() []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, line := range c.lines {
		if i, ok := index[line.Subject]; ok {
			groups[i].Count++
			continue
		}
		index[line.Subject] = len(groups)
		groups = append(groups, Group{
			Subject:   line.Subject,
			Location:  line.Location,
			UnitPrice: line.Price,
			Spaces:    line.Spaces,
			Count:     1,
		})
	}
	return groups
}
