package domain

import "time"

// Difficulty labels a question for presentation; it does not affect scoring.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question models an MCQ question with exactly one correct answer.
// The correct answer is stored by text and must be one of Options.
type Question struct {
	ID            int        `json:"id" yaml:"id"`
	Question      string     `json:"question" yaml:"question"`
	Options       []string   `json:"options" yaml:"options"`
	CorrectAnswer string     `json:"correctAnswer" yaml:"correctAnswer"`
	Explanation   string     `json:"explanation" yaml:"explanation"`
	Points        int        `json:"points" yaml:"points"`
	Difficulty    Difficulty `json:"difficulty" yaml:"difficulty"`
}

// Bank is a named set of questions loaded at startup.
type Bank struct {
	ID        string     `json:"id" yaml:"id"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// QuizConfig is derived from the question set plus fixed constants.
type QuizConfig struct {
	TimePerQuestion time.Duration
	PassingScore    int // percent, 0..100
	TotalQuestions  int
	MaxScore        int // sum of question points
}

// ConfigFor derives the quiz configuration for a question set.
func ConfigFor(questions []Question, timePerQuestion time.Duration, passingScore int) QuizConfig {
	max := 0
	for _, q := range questions {
		max += q.Points
	}
	return QuizConfig{
		TimePerQuestion: timePerQuestion,
		PassingScore:    passingScore,
		TotalQuestions:  len(questions),
		MaxScore:        max,
	}
}

// AnswerRecord captures the outcome of one question within a session.
// Immutable once appended to the transcript.
type AnswerRecord struct {
	QuestionID     int    `json:"questionId"`
	Question       string `json:"question"`
	SelectedAnswer string `json:"selectedAnswer"` // empty when time ran out unanswered
	CorrectAnswer  string `json:"correctAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	TimeUsed       int    `json:"timeUsed"` // seconds
}

// ScoreEntry is one finalized quiz attempt in the persisted score log.
type ScoreEntry struct {
	ID         string    `json:"id"`
	PlayerName string    `json:"name"`
	Score      int       `json:"score"`
	CreatedAt  time.Time `json:"timestamp"`
	Date       string    `json:"date"` // display date, fixed at append time
}

// PlayerProfile is the per-device cumulative record for the latest player name.
type PlayerProfile struct {
	Name         string     `json:"name"`
	TotalQuizzes int        `json:"totalQuizzes"`
	BestScore    int        `json:"bestScore"`
	LastPlayed   *time.Time `json:"lastPlayed"`
}

// Grade is the result of applying the grading policy to a final score.
type Grade struct {
	Grade      string `json:"grade"`
	Percentage int    `json:"percentage"`
	Message    string `json:"message"`
	Emoji      string `json:"emoji"`
}

// RankedEntry is a score entry annotated for leaderboard views.
type RankedEntry struct {
	ScoreEntry
	Rank    int `json:"rank"`
	Percent int `json:"percent"` // of max score
}

// LeaderboardStats aggregates the whole score log.
type LeaderboardStats struct {
	TotalParticipants int `json:"totalParticipants"`
	TotalAttempts     int `json:"totalAttempts"`
	AverageScore      int `json:"averageScore"`
	HighestScore      int `json:"highestScore"`
}
