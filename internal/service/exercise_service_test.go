package service

import (
	"context"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/DrNour/Nour-translation-app/internal/dto"
	"github.com/DrNour/Nour-translation-app/internal/models"
)

func newExerciseFixture(t *testing.T) (ExerciseService, *memoryExerciseRepo, models.Account, models.Account) {
	t.Helper()

	accounts := newMemoryAccountRepo()
	exercises := newMemoryExerciseRepo()

	instructor := models.Account{Username: "nour", PasswordHash: "x", Role: models.RoleInstructor}
	require.NoError(t, accounts.Create(context.Background(), &instructor))
	student := models.Account{Username: "amira", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, accounts.Create(context.Background(), &student))

	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewExerciseService(exercises, accounts, validate, zerolog.New(io.Discard))

	return svc, exercises, instructor, student
}

func TestCreateExercise(t *testing.T) {
	svc, exercises, instructor, _ := newExerciseFixture(t)

	response, err := svc.Create(context.Background(), dto.ExerciseCreateRequest{
		Title:                "Basics",
		SourceText:           "Die Katze sass auf der Matte",
		ReferenceTranslation: "The cat sat on the mat",
		TargetLanguage:       "en",
	}, instructor.ID)
	require.NoError(t, err)

	require.NotZero(t, response.ID)
	require.Equal(t, "Basics", response.Title)
	require.Equal(t, "The cat sat on the mat", response.ReferenceTranslation)
	require.Equal(t, instructor.ID, response.CreatedBy)

	stored, err := exercises.GetByID(context.Background(), response.ID)
	require.NoError(t, err)
	require.Equal(t, "Die Katze sass auf der Matte", stored.SourceText)
}

func TestCreateExerciseStripsMarkup(t *testing.T) {
	svc, _, instructor, _ := newExerciseFixture(t)

	response, err := svc.Create(context.Background(), dto.ExerciseCreateRequest{
		Title:                "<b>Basics</b>",
		SourceText:           "Die Katze <script>alert(1)</script>",
		ReferenceTranslation: "The cat",
	}, instructor.ID)
	require.NoError(t, err)

	require.Equal(t, "Basics", response.Title)
	require.NotContains(t, response.SourceText, "<script>")
}

func TestCreateExerciseRejectsStudentAuthor(t *testing.T) {
	svc, exercises, _, student := newExerciseFixture(t)

	_, err := svc.Create(context.Background(), dto.ExerciseCreateRequest{
		SourceText:           "Die Katze",
		ReferenceTranslation: "The cat",
	}, student.ID)
	require.ErrorIs(t, err, ErrInstructorNotFound)
	require.Empty(t, exercises.exercises)
}

func TestCreateExerciseRejectsUnknownAuthor(t *testing.T) {
	svc, _, _, _ := newExerciseFixture(t)

	_, err := svc.Create(context.Background(), dto.ExerciseCreateRequest{
		SourceText:           "Die Katze",
		ReferenceTranslation: "The cat",
	}, 999)
	require.ErrorIs(t, err, ErrInstructorNotFound)
}

func TestCreateExerciseRequiresReference(t *testing.T) {
	svc, _, instructor, _ := newExerciseFixture(t)

	var validationErrors validator.ValidationErrors
	_, err := svc.Create(context.Background(), dto.ExerciseCreateRequest{
		SourceText: "Die Katze",
	}, instructor.ID)
	require.Error(t, err)
	require.ErrorAs(t, err, &validationErrors)
}

func TestListAndGetExercises(t *testing.T) {
	svc, _, instructor, _ := newExerciseFixture(t)

	first, err := svc.Create(context.Background(), dto.ExerciseCreateRequest{
		SourceText:           "Die Katze",
		ReferenceTranslation: "The cat",
	}, instructor.ID)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.ExerciseCreateRequest{
		SourceText:           "Der Hund",
		ReferenceTranslation: "The dog",
	}, instructor.ID)
	require.NoError(t, err)

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 2)

	fetched, err := svc.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	require.Equal(t, first.SourceText, fetched.SourceText)

	_, err = svc.GetByID(context.Background(), 999)
	require.ErrorIs(t, err, ErrExerciseNotFound)
}
