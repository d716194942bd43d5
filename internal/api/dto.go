package api

import "github.com/abhisek/quizgen/internal/quiz"

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

type extractResponse struct {
	Success       bool   `json:"success"`
	TextExtracted string `json:"text_extracted"`
	FileName      string `json:"file_name"`
	FileSize      int    `json:"file_size"`
}

type quizResponse struct {
	QuizTitle string          `json:"quiz_title"`
	Questions []quiz.Question `json:"questions"`
}

type generateRequest struct {
	Text  string `json:"text" validate:"required"`
	Count int    `json:"count" validate:"omitempty,min=1"`
	Title string `json:"title"`
}

type syncRequest struct {
	Title     string          `json:"title"`
	Questions []quiz.Question `json:"questions" validate:"required,min=1,dive"`
}

type answerRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	UserAnswer string `json:"user_answer"`
}
