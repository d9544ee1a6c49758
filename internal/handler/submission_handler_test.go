package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/DrNour/Nour-translation-app/internal/config"
	"github.com/DrNour/Nour-translation-app/internal/dto"
	"github.com/DrNour/Nour-translation-app/internal/handler"
	"github.com/DrNour/Nour-translation-app/internal/models"
	"github.com/DrNour/Nour-translation-app/internal/repository"
	"github.com/DrNour/Nour-translation-app/internal/router"
	"github.com/DrNour/Nour-translation-app/internal/service"
	"github.com/DrNour/Nour-translation-app/pkg/bleu"
)

// testIdentity binds the caller identity from request headers so tests can
// exercise role-guarded routes without issuing real tokens.
func testIdentity(c *fiber.Ctx) error {
	if raw := c.Get("X-Test-User"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			c.Locals("user_id", uint(id))
		}
	}
	c.Locals("user_role", c.Get("X-Test-Role"))
	return c.Next()
}

func setupSubmissionApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Account{}, &models.Exercise{}, &models.Submission{}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	accountRepo := repository.NewAccountRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	scoring := service.NewScoringService(bleu.New(), nil, nil, time.Second, logger)
	submissionService := service.NewSubmissionService(submissionRepo, exerciseRepo, accountRepo, scoring, nil, validate, logger)
	exerciseService := service.NewExerciseService(exerciseRepo, accountRepo, validate, logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test", JWTSecret: "secret"}, router.Dependencies{
		ExerciseHandler:   handler.NewExerciseHandler(exerciseService, logger),
		SubmissionHandler: handler.NewSubmissionHandler(submissionService, logger),
		JWTMiddleware:     testIdentity,
	})

	return app, db
}

func seedAccountsAndExercise(t *testing.T, db *gorm.DB) (models.Account, models.Account, models.Exercise) {
	t.Helper()

	student := models.Account{Username: "amira", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)
	instructor := models.Account{Username: "nour", PasswordHash: "x", Role: models.RoleInstructor}
	require.NoError(t, db.Create(&instructor).Error)

	exercise := models.Exercise{
		Title:                "Basics",
		SourceText:           "Die Katze sass auf der Matte",
		ReferenceTranslation: "The cat sat on the mat",
		TargetLanguage:       "en",
		CreatedBy:            instructor.ID,
	}
	require.NoError(t, db.Create(&exercise).Error)

	return student, instructor, exercise
}

func submitTranslation(t *testing.T, app *fiber.App, studentID uint, exerciseID uint, text string) (int, []byte) {
	t.Helper()

	payload, err := json.Marshal(fiber.Map{"exercise_id": exerciseID, "translation_text": text})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/submissions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", strconv.FormatUint(uint64(studentID), 10))
	req.Header.Set("X-Test-Role", models.RoleStudent)

	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, body
}

func TestSubmissionEndpointScoresAndPersists(t *testing.T) {
	app, db := setupSubmissionApp(t)
	student, _, exercise := seedAccountsAndExercise(t, db)

	status, body := submitTranslation(t, app, student.ID, exercise.ID, "the cat sat on the mat")
	require.Equal(t, fiber.StatusCreated, status)

	var envelope struct {
		Success bool                   `json:"success"`
		Data    dto.SubmissionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.True(t, envelope.Success)
	require.NotZero(t, envelope.Data.ID)
	require.NotNil(t, envelope.Data.ScoreBLEU)
	require.Nil(t, envelope.Data.ScoreEmbeddingF1)
	require.Contains(t, envelope.Data.ErrorTags, models.ErrorTagCapitalization)

	var count int64
	require.NoError(t, db.Model(&models.Submission{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestSubmissionEndpointUnknownExercise(t *testing.T) {
	app, db := setupSubmissionApp(t)
	student, _, _ := seedAccountsAndExercise(t, db)

	status, _ := submitTranslation(t, app, student.ID, 999, "anything")
	require.Equal(t, fiber.StatusNotFound, status)
}

func TestSubmissionEndpointRequiresStudentRole(t *testing.T) {
	app, db := setupSubmissionApp(t)
	_, instructor, exercise := seedAccountsAndExercise(t, db)

	payload, err := json.Marshal(fiber.Map{"exercise_id": exercise.ID, "translation_text": "anything"})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/submissions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", strconv.FormatUint(uint64(instructor.ID), 10))
	req.Header.Set("X-Test-Role", models.RoleInstructor)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestSubmissionListRequiresInstructorRole(t *testing.T) {
	app, db := setupSubmissionApp(t)
	student, _, _ := seedAccountsAndExercise(t, db)

	req := httptest.NewRequest("GET", "/api/v1/submissions", nil)
	req.Header.Set("X-Test-User", strconv.FormatUint(uint64(student.ID), 10))
	req.Header.Set("X-Test-Role", models.RoleStudent)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestSubmissionListFiltersByQuery(t *testing.T) {
	app, db := setupSubmissionApp(t)
	student, instructor, exercise := seedAccountsAndExercise(t, db)

	other := models.Account{Username: "karim", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&other).Error)

	status, _ := submitTranslation(t, app, student.ID, exercise.ID, "The cat sat on the mat")
	require.Equal(t, fiber.StatusCreated, status)
	status, _ = submitTranslation(t, app, other.ID, exercise.ID, "The cat")
	require.Equal(t, fiber.StatusCreated, status)

	url := fmt.Sprintf("/api/v1/submissions?student_id=%d", student.ID)
	req := httptest.NewRequest("GET", url, nil)
	req.Header.Set("X-Test-User", strconv.FormatUint(uint64(instructor.ID), 10))
	req.Header.Set("X-Test-Role", models.RoleInstructor)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Success bool                     `json:"success"`
		Data    []dto.SubmissionResponse `json:"data"`
	}
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.Len(t, envelope.Data, 1)
	require.Equal(t, student.ID, envelope.Data[0].StudentID)
}

func TestSubmissionGetByID(t *testing.T) {
	app, db := setupSubmissionApp(t)
	student, _, exercise := seedAccountsAndExercise(t, db)

	status, body := submitTranslation(t, app, student.ID, exercise.ID, "The cat sat on the mat")
	require.Equal(t, fiber.StatusCreated, status)

	var created struct {
		Data dto.SubmissionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &created))

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/submissions/%d", created.Data.ID), nil)
	req.Header.Set("X-Test-User", strconv.FormatUint(uint64(student.ID), 10))
	req.Header.Set("X-Test-Role", models.RoleStudent)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	missing := httptest.NewRequest("GET", "/api/v1/submissions/9999", nil)
	missing.Header.Set("X-Test-User", strconv.FormatUint(uint64(student.ID), 10))
	missing.Header.Set("X-Test-Role", models.RoleStudent)

	resp, err = app.Test(missing)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
