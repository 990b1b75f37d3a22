package app_test

import (
	"errors"
	"testing"

	"gigiceria-quiz/internal/app"
	"gigiceria-quiz/internal/domain"
)

func TestGradeThresholds(t *testing.T) {
	cases := []struct {
		score, max int
		grade      string
		percentage int
	}{
		{100, 100, "A", 100},
		{90, 100, "A", 90},
		{89, 100, "B", 89},
		{80, 100, "B", 80},
		{79, 100, "C", 79},
		{70, 100, "C", 70},
		{69, 100, "D", 69},
		{0, 100, "D", 0},
		{139, 200, "C", 70}, // 69.5% rounds up
	}
	for _, tc := range cases {
		grade, err := app.GradeFor(tc.score, tc.max)
		if err != nil {
			t.Fatalf("grade(%d,%d): %v", tc.score, tc.max, err)
		}
		if grade.Grade != tc.grade || grade.Percentage != tc.percentage {
			t.Fatalf("grade(%d,%d) = %s/%d%%, want %s/%d%%", tc.score, tc.max, grade.Grade, grade.Percentage, tc.grade, tc.percentage)
		}
		if grade.Message == "" || grade.Emoji == "" {
			t.Fatalf("grade(%d,%d) missing display content: %+v", tc.score, tc.max, grade)
		}
	}
}

func TestGradeFullMarksIsTopGrade(t *testing.T) {
	for _, max := range []int{10, 100, 250} {
		grade, err := app.GradeFor(max, max)
		if err != nil {
			t.Fatalf("grade(%d,%d): %v", max, max, err)
		}
		if grade.Grade != "A" {
			t.Fatalf("full marks must grade A, got %s", grade.Grade)
		}
	}
}

func TestGradeRejectsNonPositiveMax(t *testing.T) {
	for _, max := range []int{0, -1} {
		if _, err := app.GradeFor(50, max); !errors.Is(err, domain.ErrInvalidMaxScore) {
			t.Fatalf("expected ErrInvalidMaxScore for max %d, got %v", max, err)
		}
	}
}
