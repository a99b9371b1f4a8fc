package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/routes"
	"clinic-app-server/internal/utils"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Port:                      "8000",
		Origin:                    "http://localhost:3000",
		Environment:               "test",
		JWTSecret:                 "test_jwt_secret",
		JWTRefreshSecret:          "test_refresh_secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 24,
	}
}

// setupTest builds a fresh in-memory database and a fully routed engine.
func setupTest(t *testing.T) (*gorm.DB, *gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))

	cfg := newTestConfig()
	router := gin.New()
	routes.SetupRoutes(router, db, cfg)
	return db, router, cfg
}

func createPatient(t *testing.T, db *gorm.DB, email string) models.Patient {
	t.Helper()
	patient := models.Patient{
		FullName: "Test Patient",
		Gender:   "female",
		Phone:    "555-0100",
	}
	patient.Email = email
	require.NoError(t, patient.SetPassword("secret"))
	require.NoError(t, db.Create(&patient).Error)
	return patient
}

func createDoctor(t *testing.T, db *gorm.DB, email string) models.Doctor {
	t.Helper()
	doctor := models.Doctor{
		FullName: "Test Doctor",
		Phone:    "555-0200",
	}
	doctor.Email = email
	require.NoError(t, doctor.SetPassword("secret"))
	require.NoError(t, db.Create(&doctor).Error)
	return doctor
}

func createAssistant(t *testing.T, db *gorm.DB, email string) models.Assistant {
	t.Helper()
	assistant := models.Assistant{
		FullName: "Test Assistant",
		Phone:    "555-0300",
	}
	assistant.Email = email
	require.NoError(t, assistant.SetPassword("secret"))
	require.NoError(t, db.Create(&assistant).Error)
	return assistant
}

func accessToken(t *testing.T, cfg *config.Config, role models.Role, id uint) string {
	t.Helper()
	token, _, err := utils.GenerateTokens(role, id, cfg)
	require.NoError(t, err)
	return token
}

// doRequest performs a JSON request against the router. A nil body sends
// no payload; an empty token sends no Authorization header.
func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals the recorded response without consuming the
// recorder's buffer, so callers may still inspect w.Body afterwards.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
