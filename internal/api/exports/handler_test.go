package exports

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"timestamper-api/database"
	"timestamper-api/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/export", Export)
	return r
}

func subscriptionRows(plan string, used int, limit interface{}) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"user_id", "plan", "status", "exports_used", "exports_limit"}).
		AddRow("u1", plan, "active", used, limit)
}

func postJSON(router *gin.Engine, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestExportConsumesQuota(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	database.DB = db

	mock.ExpectExec(`UPDATE "user_subscriptions" SET "exports_used"=exports_used \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "user_subscriptions" WHERE user_id =`).
		WillReturnRows(subscriptionRows("Free", 1, 3))
	mock.ExpectQuery(`INSERT INTO "exports"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	resp := postJSON(exportRouter(), "/api/export", `{"userId":"u1"}`)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"ok":true,"plan":"Free","used":1,"max":3}`, resp.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportQuotaExceeded(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	database.DB = db

	mock.ExpectExec(`UPDATE "user_subscriptions" SET "exports_used"=exports_used \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "user_subscriptions" WHERE user_id =`).
		WillReturnRows(subscriptionRows("Free", 3, 3))

	resp := postJSON(exportRouter(), "/api/export", `{"userId":"u1"}`)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.JSONEq(t, `{"error":"Export limit reached for your plan","plan":"Free","used":3,"max":3}`, resp.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportUnlimitedNeverRejects(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	database.DB = db

	mock.ExpectExec(`UPDATE "user_subscriptions" SET "exports_used"=exports_used \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "user_subscriptions" WHERE user_id =`).
		WillReturnRows(subscriptionRows("Unlimited", 7, nil))
	mock.ExpectQuery(`INSERT INTO "exports"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	resp := postJSON(exportRouter(), "/api/export", `{"userId":"u1","format":"srt"}`)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"ok":true,"plan":"Unlimited","used":7,"max":null}`, resp.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportSubscriptionNotFound(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	database.DB = db

	mock.ExpectExec(`UPDATE "user_subscriptions" SET "exports_used"=exports_used \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "user_subscriptions" WHERE user_id =`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	resp := postJSON(exportRouter(), "/api/export", `{"userId":"ghost"}`)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.JSONEq(t, `{"error":"Subscription not found"}`, resp.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func renderRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/export/render", func(c *gin.Context) { c.Set("user_id", "u1") }, Render)
	return r
}

func TestRenderProducesCsvAndConsumesQuota(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	database.DB = db

	mock.ExpectExec(`UPDATE "user_subscriptions" SET "exports_used"=exports_used \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "user_subscriptions" WHERE user_id =`).
		WillReturnRows(subscriptionRows("Pro", 5, 10))
	mock.ExpectQuery(`INSERT INTO "exports"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	body := `{"fileName":"track","format":"csv","timestamps":[{"id":"a","time":61.5,"label":"drop"},{"id":"b","time":3.2,"label":"intro"}]}`
	resp := postJSON(renderRouter(), "/api/export/render", body)

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out struct {
		Content  string `json:"content"`
		FileName string `json:"fileName"`
		MimeType string `json:"mimeType"`
		Used     int    `json:"used"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, "track.csv", out.FileName)
	assert.Equal(t, "text/csv", out.MimeType)
	assert.Equal(t, 5, out.Used)
	assert.Equal(t, "Index,Time,Time (seconds),Label\n1,0:03,3.20,\"intro\"\n2,1:01,61.50,\"drop\"\n", out.Content)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRenderUnknownFormat(t *testing.T) {
	resp := postJSON(renderRouter(), "/api/export/render",
		`{"fileName":"track","format":"docx","timestamps":[]}`)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.JSONEq(t, `{"error":"Unknown export format"}`, resp.Body.String())
}

func TestExportMissingUserID(t *testing.T) {
	resp := postJSON(exportRouter(), "/api/export", `{}`)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.JSONEq(t, `{"error":"userId is required"}`, resp.Body.String())
}
