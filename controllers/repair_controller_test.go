package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/maa-telecom/repair-pos-api/models"
	"github.com/maa-telecom/repair-pos-api/store"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// setupTestStore wires an empty store over in-memory sqlite as the global
// instance and returns it.
func setupTestStore(t *testing.T) *store.RepairStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&store.StorageEntry{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	s := store.NewRepairStore(db)
	if err := s.Load(); err != nil {
		t.Fatalf("Failed to load test store: %v", err)
	}
	store.Set(s)
	return s
}

func validDraftBody() map[string]interface{} {
	return map[string]interface{}{
		"customerName":     "Rahul Hasan",
		"customerPhone":    "01712345678",
		"deviceModel":      "iPhone 13",
		"issueDescription": "Display flickering after drop",
		"estimatedCost":    2000,
		"laborCharge":      300,
	}
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateRepair(t *testing.T) {
	setupTestStore(t)
	router := setupTestRouter()
	router.POST("/repairs", CreateRepair)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name:           "Successfully create repair",
			requestBody:    validDraftBody(),
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.True(t, response["success"].(bool))
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "Rahul Hasan", data["customerName"])
				assert.Equal(t, "Pending", data["status"])
				assert.NotEmpty(t, data["id"])
				assert.Regexp(t, `^MAA-\d{4}$`, data["invoiceNumber"])
				assert.NotEmpty(t, data["createdAt"])
			},
		},
		{
			name: "Explicit status is kept",
			requestBody: func() map[string]interface{} {
				body := validDraftBody()
				body["status"] = "In Progress"
				return body
			}(),
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "In Progress", data["status"])
			},
		},
		{
			name: "Fail with unknown status",
			requestBody: func() map[string]interface{} {
				body := validDraftBody()
				body["status"] = "Archived"
				return body
			}(),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with missing customer name",
			requestBody: func() map[string]interface{} {
				body := validDraftBody()
				delete(body, "customerName")
				return body
			}(),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with missing issue description",
			requestBody: func() map[string]interface{} {
				body := validDraftBody()
				delete(body, "issueDescription")
				return body
			}(),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with negative labor charge",
			requestBody: func() map[string]interface{} {
				body := validDraftBody()
				body["laborCharge"] = -50
				return body
			}(),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(router, http.MethodPost, "/repairs", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				errObj := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errObj["code"])
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestCreateRepair_NoPartialRecordPersisted(t *testing.T) {
	s := setupTestStore(t)
	router := setupTestRouter()
	router.POST("/repairs", CreateRepair)

	body := validDraftBody()
	delete(body, "customerPhone")
	w := performJSON(router, http.MethodPost, "/repairs", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, s.Count())
}

func TestCreateRepair_NewRecordIsHead(t *testing.T) {
	s := setupTestStore(t)
	router := setupTestRouter()
	router.POST("/repairs", CreateRepair)

	performJSON(router, http.MethodPost, "/repairs", validDraftBody())

	second := validDraftBody()
	second["customerName"] = "Karim Uddin"
	performJSON(router, http.MethodPost, "/repairs", second)

	all := s.GetAll()
	assert.Len(t, all, 2)
	assert.Equal(t, "Karim Uddin", all[0].CustomerName)
}

func TestListRepairs(t *testing.T) {
	s := setupTestStore(t)
	router := setupTestRouter()
	router.GET("/repairs", ListRepairs)

	s.Create(store.Draft{
		CustomerName:     "Rahul Hasan",
		CustomerPhone:    "01712345678",
		DeviceModel:      "iPhone 13",
		IssueDescription: "Display flickering",
		EstimatedCost:    2000,
		LaborCharge:      300,
		PartsUsed:        []models.Part{{ID: "1", Name: "Display Replacement", Price: 1500}},
	})
	s.Create(store.Draft{
		CustomerName:     "Karim Uddin",
		CustomerPhone:    "01898765432",
		DeviceModel:      "Samsung S22",
		IssueDescription: "Not charging",
	})

	t.Run("List all newest first with row totals", func(t *testing.T) {
		w := performJSON(router, http.MethodGet, "/repairs", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)

		data := response["data"].([]interface{})
		assert.Len(t, data, 2)
		assert.Equal(t, float64(2), response["meta"].(map[string]interface{})["count"])

		head := data[0].(map[string]interface{})
		assert.Equal(t, "Karim Uddin", head["customerName"])
		assert.Equal(t, 0.0, head["rowTotal"])

		// Row total includes estimated cost: 2000 + 300 + 1500
		tail := data[1].(map[string]interface{})
		assert.Equal(t, 3800.0, tail["rowTotal"])
	})

	t.Run("Search filters the list", func(t *testing.T) {
		w := performJSON(router, http.MethodGet, "/repairs?search=samsung", nil)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		data := response["data"].([]interface{})
		assert.Len(t, data, 1)
		assert.Equal(t, "Karim Uddin", data[0].(map[string]interface{})["customerName"])
	})

	t.Run("Search with no matches returns empty list", func(t *testing.T) {
		w := performJSON(router, http.MethodGet, "/repairs?search=nokia", nil)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Empty(t, response["data"])
	})
}

func TestGetRepair(t *testing.T) {
	s := setupTestStore(t)
	router := setupTestRouter()
	router.GET("/repairs/:id", GetRepair)

	created := s.Create(store.Draft{
		CustomerName:     "Fatema Begum",
		CustomerPhone:    "01911112222",
		DeviceModel:      "Redmi Note 12",
		IssueDescription: "Speaker distortion",
	})

	t.Run("Found", func(t *testing.T) {
		w := performJSON(router, http.MethodGet, "/repairs/"+created.ID, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, created.InvoiceNumber, response["data"].(map[string]interface{})["invoiceNumber"])
	})

	t.Run("Not found", func(t *testing.T) {
		w := performJSON(router, http.MethodGet, "/repairs/nonexistent", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "NOT_FOUND", response["error"].(map[string]interface{})["code"])
	})
}

func TestDeleteRepair(t *testing.T) {
	s := setupTestStore(t)
	router := setupTestRouter()
	router.DELETE("/repairs/:id", DeleteRepair)

	created := s.Create(store.Draft{
		CustomerName:     "Rahul Hasan",
		CustomerPhone:    "01712345678",
		DeviceModel:      "iPhone 13",
		IssueDescription: "Display flickering",
	})

	t.Run("Fails without confirmation", func(t *testing.T) {
		w := performJSON(router, http.MethodDelete, "/repairs/"+created.ID, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "CONFIRMATION_REQUIRED", response["error"].(map[string]interface{})["code"])
		assert.Equal(t, 1, s.Count())
	})

	t.Run("Unknown id is not found", func(t *testing.T) {
		w := performJSON(router, http.MethodDelete, "/repairs/nonexistent?confirm=true", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, 1, s.Count())
	})

	t.Run("Confirmed delete removes exactly one record", func(t *testing.T) {
		w := performJSON(router, http.MethodDelete, "/repairs/"+created.ID+"?confirm=true", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, s.Count())
	})
}
