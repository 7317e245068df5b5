package model

import "strings"

const (
	// RubricSize is the number of rubric entries and the number of questions per exam.
	RubricSize = 5
	// MaxLineLength bounds a rubric line and the stored exam text.
	MaxLineLength = 100
)

// Rubric holds the ordered grading criteria.
type Rubric [RubricSize]string

// Lines returns rubric entries as a slice.
func (r *Rubric) Lines() []string {
	ret := make([]string, RubricSize)
	copy(ret, r[:])
	return ret
}

// SetLines copies lines into the rubric, trimming line terminators and
// truncating to MaxLineLength. Missing lines leave entries empty; extra
// lines are ignored.
func (r *Rubric) SetLines(lines []string) {
	for i := range r {
		r[i] = ""
		if i < len(lines) {
			r[i] = clip(strings.TrimRight(lines[i], "\r\n"))
		}
	}
}

// Text returns rubric content as persisted: every entry followed by a new line.
func (r *Rubric) Text() string {
	var b strings.Builder
	for _, line := range r {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// TargetIndex returns position of the correction target: the character two
// positions after the first comma. It returns -1 when no comma exists or the
// position is out of bounds.
func TargetIndex(line string) int {
	comma := strings.IndexByte(line, ',')
	if comma < 0 {
		return -1
	}
	idx := comma + 2
	if idx >= len(line) {
		return -1
	}
	return idx
}

// Advance moves an upper case letter one step through the alphabet, wrapping
// Z back to A. Any other character is incremented by one code point.
func Advance(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return 'A' + (c-'A'+1)%26
	}
	return c + 1
}

// Correct applies a single correction to the line. ok is false when the line
// has no correction target, in which case it is returned unchanged.
func Correct(line string) (updated string, from, to byte, ok bool) {
	idx := TargetIndex(line)
	if idx < 0 {
		return line, 0, 0, false
	}
	from = line[idx]
	to = Advance(from)
	buf := []byte(line)
	buf[idx] = to
	return string(buf), from, to, true
}

func clip(s string) string {
	if len(s) >= MaxLineLength {
		return s[:MaxLineLength-1]
	}
	return s
}
