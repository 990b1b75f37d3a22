package app

import (
	"math"

	"gigiceria-quiz/internal/domain"
)

// gradeBand maps a minimum percentage to its display content. Ordered high
// to low; the first match wins.
type gradeBand struct {
	min     int
	grade   string
	message string
	emoji   string
}

var gradeBands = []gradeBand{
	{90, "A", "Outstanding! You really know how to keep your teeth healthy!", "🏆"},
	{80, "B", "Great job! Your understanding is very good!", "🥇"},
	{70, "C", "Not bad! Keep up the learning spirit!", "🥈"},
	{0, "D", "Don't give up! Review the material and try the quiz again!", "🥉"},
}

// GradeFor maps a final score to its letter grade. Pure: the same inputs
// always yield the same grade.
func GradeFor(score, maxScore int) (domain.Grade, error) {
	if maxScore <= 0 {
		return domain.Grade{}, domain.ErrInvalidMaxScore
	}
	percentage := percentOf(score, maxScore)
	for _, band := range gradeBands {
		if percentage >= band.min {
			return domain.Grade{
				Grade:      band.grade,
				Percentage: percentage,
				Message:    band.message,
				Emoji:      band.emoji,
			}, nil
		}
	}
	last := gradeBands[len(gradeBands)-1]
	return domain.Grade{Grade: last.grade, Percentage: percentage, Message: last.message, Emoji: last.emoji}, nil
}

func percentOf(score, maxScore int) int {
	return int(math.Round(float64(score) / float64(maxScore) * 100))
}
