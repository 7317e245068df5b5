package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStudentID(t *testing.T) {
	testCases := []struct {
		text   string
		expect int
	}{
		{text: "0001", expect: 1},
		{text: "1234 John Smith", expect: 1234},
		{text: "  42abc", expect: 42},
		{text: "9999", expect: SentinelStudentID},
		{text: "-7", expect: -7},
		{text: "+8", expect: 8},
		{text: "abc", expect: 0},
		{text: "", expect: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.expect, ParseStudentID(tc.text))
		})
	}
}

func TestNewExam(t *testing.T) {
	exam := NewExam(0, "0017\n")
	assert.Equal(t, "exam_0001.txt", exam.Name)
	assert.Equal(t, "0017", exam.Text)
	assert.Equal(t, 17, exam.StudentID)
	assert.False(t, exam.IsSentinel())

	assert.True(t, NewExam(19, "9999").IsSentinel())
	assert.Equal(t, "exam_0020.txt", ExamName(19))
	var nilExam *Exam
	assert.False(t, nilExam.IsSentinel())
}

func TestQuestionStatus_String(t *testing.T) {
	assert.Equal(t, "unmarked", Unmarked.String())
	assert.Equal(t, "marked", Marked.String())
	assert.Equal(t, "status(7)", QuestionStatus(7).String())
}
