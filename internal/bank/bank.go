// Package bank holds the built-in question bank the app ships with, used
// whenever no external bank source is configured.
package bank

import "gigiceria-quiz/internal/domain"

// DefaultID is the id of the built-in dental-care bank.
const DefaultID = "dental-care"

// Default returns the built-in bank: ten questions on proper tooth
// brushing, ten points each.
func Default() domain.Bank {
	return domain.Bank{
		ID: DefaultID,
		Questions: []domain.Question{
			{
				ID:            1,
				Question:      "How many times a day should you brush your teeth?",
				Options:       []string{"Once", "Twice", "Three times", "Four times"},
				CorrectAnswer: "Twice",
				Explanation:   "Brush twice a day, in the morning after breakfast and at night before bed, for the best results.",
				Points:        10,
				Difficulty:    domain.DifficultyEasy,
			},
			{
				ID:            2,
				Question:      "How long should brushing your teeth take?",
				Options:       []string{"30 seconds", "1 minute", "2 minutes", "5 minutes"},
				CorrectAnswer: "2 minutes",
				Explanation:   "Brushing for 2 minutes makes sure every part of every tooth gets properly cleaned.",
				Points:        10,
				Difficulty:    domain.DifficultyEasy,
			},
			{
				ID:            3,
				Question:      "How much toothpaste do you need?",
				Options:       []string{"A peanut-sized amount", "A corn-kernel-sized amount", "A marble-sized amount", "A brush-sized amount"},
				CorrectAnswer: "A corn-kernel-sized amount",
				Explanation:   "A corn-kernel-sized dab is enough; more toothpaste does not clean better.",
				Points:        10,
				Difficulty:    domain.DifficultyMedium,
			},
			{
				ID:            4,
				Question:      "Which parts of your teeth should you brush?",
				Options:       []string{"Only the front", "Only the back", "Only the top", "Every surface"},
				CorrectAnswer: "Every surface",
				Explanation:   "Front, back, and chewing surfaces all collect plaque and need brushing.",
				Points:        10,
				Difficulty:    domain.DifficultyEasy,
			},
			{
				ID:            5,
				Question:      "When should you replace your toothbrush?",
				Options:       []string{"Every month", "Every 3 months", "Every 6 months", "Every year"},
				CorrectAnswer: "Every 3 months",
				Explanation:   "Replace your brush every 3-4 months, or sooner once the bristles are worn out.",
				Points:        10,
				Difficulty:    domain.DifficultyMedium,
			},
			{
				ID:            6,
				Question:      "What happens if you don't brush your teeth?",
				Options:       []string{"Teeth turn whiter", "Teeth grow stronger", "Cavities and bad breath", "Nothing happens"},
				CorrectAnswer: "Cavities and bad breath",
				Explanation:   "Without brushing, bacteria build up and produce acid that causes cavities and bad breath.",
				Points:        10,
				Difficulty:    domain.DifficultyEasy,
			},
			{
				ID:            7,
				Question:      "What is the correct brushing motion?",
				Options:       []string{"Straight strokes", "Small circles", "Zigzag strokes", "Random strokes"},
				CorrectAnswer: "Small circles",
				Explanation:   "Gentle circular motions lift food debris and plaque most effectively.",
				Points:        10,
				Difficulty:    domain.DifficultyMedium,
			},
			{
				ID:            8,
				Question:      "What should you do after brushing?",
				Options:       []string{"Go straight to sleep", "Rinse with clean water", "Eat some candy", "Nothing at all"},
				CorrectAnswer: "Rinse with clean water",
				Explanation:   "Rinse with clean water to wash away the loosened debris and leftover toothpaste.",
				Points:        10,
				Difficulty:    domain.DifficultyEasy,
			},
			{
				ID:            9,
				Question:      "Which food should you avoid for healthy teeth?",
				Options:       []string{"Fruit", "Vegetables", "Sweet and sticky food", "Plain water"},
				CorrectAnswer: "Sweet and sticky food",
				Explanation:   "Sweet and sticky food clings to teeth and feeds the bacteria that cause decay.",
				Points:        10,
				Difficulty:    domain.DifficultyMedium,
			},
			{
				ID:            10,
				Question:      "How often should you visit the dentist?",
				Options:       []string{"Every month", "Every 3 months", "Every 6 months", "Only when it hurts"},
				CorrectAnswer: "Every 6 months",
				Explanation:   "A check-up every 6 months keeps teeth healthy and catches problems early.",
				Points:        10,
				Difficulty:    domain.DifficultyHard,
			},
		},
	}
}
