package model

import (
	"fmt"
	"strings"
)

// SentinelStudentID marks the end of the exam queue; it is never a real student.
const SentinelStudentID = 9999

// Exam represents the loaded first line of an exam resource.
type Exam struct {
	Index     int    `json:"index" yaml:"index"`
	Name      string `json:"name" yaml:"name"`
	Text      string `json:"text" yaml:"text"`
	StudentID int    `json:"studentId" yaml:"studentId"`
}

// IsSentinel reports whether the exam is the end-of-queue marker.
func (e *Exam) IsSentinel() bool {
	return e != nil && e.StudentID == SentinelStudentID
}

// NewExam builds an exam from its raw first line.
func NewExam(index int, text string) *Exam {
	text = clip(strings.TrimRight(text, "\r\n"))
	return &Exam{
		Index:     index,
		Name:      ExamName(index),
		Text:      text,
		StudentID: ParseStudentID(text),
	}
}

// ExamName returns resource name for a zero based exam index; index 0 maps to exam_0001.txt.
func ExamName(index int) string {
	return fmt.Sprintf("exam_%04d.txt", index+1)
}

// ParseStudentID converts leading numeric characters to an integer, skipping
// leading white space and accepting an optional sign. Text without leading
// digits yields 0.
func ParseStudentID(text string) int {
	i := 0
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	negative := false
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		negative = text[i] == '-'
		i++
	}
	value := 0
	for ; i < len(text) && text[i] >= '0' && text[i] <= '9'; i++ {
		value = value*10 + int(text[i]-'0')
		if value > 1<<31-1 {
			value = 1<<31 - 1
		}
	}
	if negative {
		return -value
	}
	return value
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
