package dto

// StudentDashboardResponse aggregates what a student sees after logging in:
// the available exercises and their own attempt history.
type StudentDashboardResponse struct {
	Exercises    []ExerciseSummary    `json:"exercises"`
	Attempts     []SubmissionResponse `json:"attempts"`
	AttemptCount int                  `json:"attempt_count"`
}
