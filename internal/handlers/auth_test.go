package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-app-server/internal/models"
)

func TestPatientRegisterAndLogin(t *testing.T) {
	db, router, _ := setupTest(t)

	registration := map[string]interface{}{
		"full_name": "New Patient",
		"gender":    "male",
		"phone":     "555-0199",
		"email":     "new@example.com",
		"password":  "hunter2",
	}

	w := doRequest(t, router, http.MethodPost, "/api/v1/patient/register", "", registration)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	assert.NotEmpty(t, body["refresh_token"])
	assert.NotContains(t, w.Body.String(), "hunter2")

	// Stored password is hashed, never the raw credential.
	var stored models.Patient
	require.NoError(t, db.Where("email = ?", "new@example.com").First(&stored).Error)
	assert.NotEqual(t, "hunter2", stored.Password)
	assert.True(t, stored.CheckPassword("hunter2"))

	t.Run("duplicate email is rejected", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/v1/patient/register", "", registration)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "already been taken")
	})

	t.Run("login succeeds with the right password", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/v1/patient/login", "",
			map[string]interface{}{"email": "new@example.com", "password": "hunter2"})
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("login fails with the wrong password", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/v1/patient/login", "",
			map[string]interface{}{"email": "new@example.com", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	})

	t.Run("login fails for an unknown email", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/v1/patient/login", "",
			map[string]interface{}{"email": "ghost@example.com", "password": "hunter2"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRoleGate(t *testing.T) {
	db, router, cfg := setupTest(t)
	patient := createPatient(t, db, "gated@example.com")
	doctor := createDoctor(t, db, "gatekeeper@example.com")
	assistant := createAssistant(t, db, "helper@example.com")

	patientToken := accessToken(t, cfg, models.RolePatient, patient.ID)
	doctorToken := accessToken(t, cfg, models.RoleDoctor, doctor.ID)
	assistantToken := accessToken(t, cfg, models.RoleAssistant, assistant.ID)

	tests := []struct {
		name       string
		path       string
		token      string
		wantStatus int
	}{
		{"missing credential", "/api/v1/patient/appointments", "", http.StatusUnauthorized},
		{"garbage credential", "/api/v1/patient/appointments", "not-a-token", http.StatusUnauthorized},
		{"patient on doctor scope", "/api/v1/doctor/appointments", patientToken, http.StatusForbidden},
		{"patient on assistant scope", "/api/v1/assistant/appointments", patientToken, http.StatusForbidden},
		{"doctor on patient scope", "/api/v1/patient/appointments", doctorToken, http.StatusForbidden},
		{"assistant on doctor scope", "/api/v1/doctor/appointments", assistantToken, http.StatusForbidden},
		{"matching role passes", "/api/v1/doctor/appointments", doctorToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodGet, tt.path, tt.token, nil)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	db, router, _ := setupTest(t)
	createPatient(t, db, "rotate@example.com")

	login := doRequest(t, router, http.MethodPost, "/api/v1/patient/login", "",
		map[string]interface{}{"email": "rotate@example.com", "password": "secret"})
	require.Equal(t, http.StatusOK, login.Code)
	refreshToken := decodeBody(t, login)["refresh_token"].(string)

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/refresh-token", "",
		map[string]interface{}{"refresh_token": refreshToken})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	reissued := body["refresh_token"].(string)
	// The reissued token must not collide with the presented one, even when
	// both are minted within the same second for the same account.
	require.NotEqual(t, refreshToken, reissued)

	// The presented token was rotated out and cannot be replayed.
	replay := doRequest(t, router, http.MethodPost, "/api/v1/auth/refresh-token", "",
		map[string]interface{}{"refresh_token": refreshToken})
	assert.Equal(t, http.StatusUnauthorized, replay.Code)

	// The reissued token is still live.
	next := doRequest(t, router, http.MethodPost, "/api/v1/auth/refresh-token", "",
		map[string]interface{}{"refresh_token": reissued})
	assert.Equal(t, http.StatusOK, next.Code)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	db, router, _ := setupTest(t)
	createPatient(t, db, "leaver@example.com")

	login := doRequest(t, router, http.MethodPost, "/api/v1/patient/login", "",
		map[string]interface{}{"email": "leaver@example.com", "password": "secret"})
	require.Equal(t, http.StatusOK, login.Code)
	body := decodeBody(t, login)
	token := body["token"].(string)
	refreshToken := body["refresh_token"].(string)

	w := doRequest(t, router, http.MethodPost, "/api/v1/patient/logout", token,
		map[string]interface{}{"refresh_token": refreshToken})
	require.Equal(t, http.StatusOK, w.Code)

	refresh := doRequest(t, router, http.MethodPost, "/api/v1/auth/refresh-token", "",
		map[string]interface{}{"refresh_token": refreshToken})
	assert.Equal(t, http.StatusUnauthorized, refresh.Code)
}

func TestProfile(t *testing.T) {
	db, router, cfg := setupTest(t)
	patient := createPatient(t, db, "me@example.com")
	doctor := createDoctor(t, db, "drme@example.com")

	w := doRequest(t, router, http.MethodGet, "/api/v1/patient/profile",
		accessToken(t, cfg, models.RolePatient, patient.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "me@example.com")

	w = doRequest(t, router, http.MethodGet, "/api/v1/doctor/profile",
		accessToken(t, cfg, models.RoleDoctor, doctor.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "drme@example.com")
}
