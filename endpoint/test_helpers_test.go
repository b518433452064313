package endpoint

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/carelog/hospital-admin/config"
	"github.com/carelog/hospital-admin/middleware"
	"github.com/carelog/hospital-admin/model"
	"github.com/carelog/hospital-admin/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// endpointTestModels is the standard set of models migrated for endpoint tests.
var endpointTestModels = []interface{}{
	&model.User{},
	&model.Patient{},
	&model.Session{},
	&model.AuditLog{},
}

// testPassword is the plaintext used for every account created in tests.
const testPassword = "secret1"

// setupEndpointTest returns a router mirroring main's route table plus a
// database connection. The shared in-memory database is migrated and emptied
// so each test starts clean.
func setupEndpointTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := config.ConnectDatabase()
	if err != nil {
		t.Fatalf("failed to connect test DB: %v", err)
	}
	if err := db.AutoMigrate(endpointTestModels...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	for _, m := range endpointTestModels {
		db.Where("1 = 1").Delete(m)
	}

	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))

	auth := r.Group("/auth")
	auth.POST("/register", Register)
	auth.POST("/login", Login)
	auth.POST("/logout", middleware.SessionAuth(), Logout)

	protected := r.Group("/", middleware.SessionAuth())
	protected.GET("/doctor", ListDoctors)
	protected.POST("/patient", CreatePatient)
	protected.GET("/patient", ListPatients)
	protected.POST("/patient/batch", ImportPatients)
	protected.GET("/patient/batch", ExportPatientsCSV)
	protected.GET("/patient/:id", GetPatientInfo)
	protected.PATCH("/patient/:id", UpdatePatient)
	protected.DELETE("/patient/:id", DeletePatient)

	return r, db
}

// createTestUser inserts an account with the shared test password.
func createTestUser(t *testing.T, db *gorm.DB, name, email string) model.User {
	t.Helper()
	salt, err := util.GenerateSalt()
	assert.NoError(t, err)
	hashed, err := util.HashPassword(testPassword, salt)
	assert.NoError(t, err)

	user := model.User{Name: name, Email: email, Password: hashed, PasswordSalt: salt}
	assert.NoError(t, db.Create(&user).Error)
	return user
}

// createTestSession records a valid session for the user and returns its token.
func createTestSession(t *testing.T, db *gorm.DB, user model.User) string {
	t.Helper()
	token := uuid.NewString()
	session := model.Session{
		UserID:       user.ID,
		SessionToken: token,
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	assert.NoError(t, db.Create(&session).Error)
	return token
}

// doRequest performs a JSON request against the router, attaching the session
// token header when one is given.
func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("session-token", token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func validPatientPayload(doctorID string) model.CreatePatientRequest {
	return model.CreatePatientRequest{
		Name:        "John Doe",
		DateOfBirth: "1990-04-12",
		VisitDate:   "2025-01-15",
		Diagnosis:   "Seasonal influenza",
		Treatment:   "Medication",
		DoctorID:    doctorID,
	}
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	assert.NoError(t, db.Model(m).Count(&n).Error)
	return n
}
