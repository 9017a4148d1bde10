package story

import "lullaby/pkg/schema"

// FallbackQuiz is served whenever a live quiz cannot be produced. A fresh
// value is built on every call so handlers never share slices.
func FallbackQuiz() schema.Quiz {
	return schema.Quiz{
		Questions: []schema.Question{
			{
				Question:           "Chi è il protagonista della storia?",
				Options:            []string{"Un bambino coraggioso", "Un gatto curioso", "Un drago gentile"},
				CorrectAnswerIndex: 0,
			},
			{
				Question:           "Dove si svolge principalmente la storia?",
				Options:            []string{"In una foresta incantata", "In una città moderna", "Su un'isola deserta"},
				CorrectAnswerIndex: 1,
			},
			{
				Question:           "Qual è la lezione principale della storia?",
				Options:            []string{"L'importanza dell'amicizia", "Il valore del coraggio", "La bellezza della natura"},
				CorrectAnswerIndex: 2,
			},
		},
	}
}
