package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/DrNour/Nour-translation-app/internal/models"
)

func newDashboardFixture(t *testing.T, cache *redis.Client) (StudentDashboardService, *memoryExerciseRepo, *memorySubmissionRepo) {
	t.Helper()

	exercises := newMemoryExerciseRepo()
	submissions := newMemorySubmissionRepo()
	svc := NewStudentDashboardService(exercises, submissions, cache, time.Minute, zerolog.New(io.Discard))

	return svc, exercises, submissions
}

func seedDashboardData(t *testing.T, exercises *memoryExerciseRepo, submissions *memorySubmissionRepo, studentID uint) {
	t.Helper()

	exercise := models.Exercise{
		Title:                "Basics",
		SourceText:           "Die Katze",
		ReferenceTranslation: "The cat",
		TargetLanguage:       "en",
		CreatedBy:            7,
	}
	require.NoError(t, exercises.Create(context.Background(), &exercise))

	bleu := 80.0
	require.NoError(t, submissions.Create(context.Background(), &models.Submission{
		ExerciseID:      exercise.ID,
		StudentID:       studentID,
		TranslationText: "The cat",
		ScoreBLEU:       &bleu,
	}))
	require.NoError(t, submissions.Create(context.Background(), &models.Submission{
		ExerciseID:      exercise.ID,
		StudentID:       studentID + 1,
		TranslationText: "Something else",
	}))
}

func TestGetDashboardAggregatesStudentAttempts(t *testing.T) {
	svc, exercises, submissions := newDashboardFixture(t, nil)
	seedDashboardData(t, exercises, submissions, 1)

	response, err := svc.GetDashboard(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, response.Exercises, 1)
	require.Equal(t, "Basics", response.Exercises[0].Title)
	require.Len(t, response.Attempts, 1)
	require.Equal(t, uint(1), response.Attempts[0].StudentID)
	require.Equal(t, 1, response.AttemptCount)
}

func TestGetDashboardWithholdsReferenceTranslation(t *testing.T) {
	svc, exercises, submissions := newDashboardFixture(t, nil)
	seedDashboardData(t, exercises, submissions, 1)

	response, err := svc.GetDashboard(context.Background(), 1)
	require.NoError(t, err)

	// The student view carries only the source side of the exercise.
	require.Equal(t, "Die Katze", response.Exercises[0].SourceText)
}

func TestGetDashboardServesFromCache(t *testing.T) {
	server := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	svc, exercises, submissions := newDashboardFixture(t, cache)
	seedDashboardData(t, exercises, submissions, 1)

	first, err := svc.GetDashboard(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, server.Exists("dashboard:student:1"))

	// New rows are invisible until the cache entry expires.
	bleu := 10.0
	require.NoError(t, submissions.Create(context.Background(), &models.Submission{
		ExerciseID:      1,
		StudentID:       1,
		TranslationText: "Another attempt",
		ScoreBLEU:       &bleu,
	}))

	second, err := svc.GetDashboard(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, first.AttemptCount, second.AttemptCount)

	server.FastForward(2 * time.Minute)

	third, err := svc.GetDashboard(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 2, third.AttemptCount)
}

func TestGetDashboardCacheIsPerStudent(t *testing.T) {
	server := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	svc, exercises, submissions := newDashboardFixture(t, cache)
	seedDashboardData(t, exercises, submissions, 1)

	mine, err := svc.GetDashboard(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, mine.AttemptCount)

	theirs, err := svc.GetDashboard(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, 1, theirs.AttemptCount)
	require.Equal(t, uint(2), theirs.Attempts[0].StudentID)
}
