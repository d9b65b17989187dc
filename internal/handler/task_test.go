package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewpay/internal/handler"
	"crewpay/internal/middleware"
	"crewpay/internal/model"
	"crewpay/internal/service"
)

func newTaskFixture(current *model.User) (*fakeTaskRepo, *gin.Engine) {
	repo := &fakeTaskRepo{}
	h := handler.NewTaskHandler(service.NewTaskService(repo))

	attach := func(c *gin.Context) {
		middleware.SetUser(c, current)
		c.Next()
	}

	r := gin.New()
	r.POST("/api/work-sheet", attach, h.Create)
	r.GET("/api/work-sheet", h.ListAll)
	r.GET("/api/work-sheet/me", attach, h.ListMine)
	r.PUT("/api/work-sheet/:id", attach, h.Update)
	r.DELETE("/api/work-sheet/:id", attach, h.Delete)
	return repo, r
}

func sendJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

var employee = &model.User{Email: "emp@x.com", Role: model.RoleEmployee}

func TestTaskCreate_NumericHours(t *testing.T) {
	repo, r := newTaskFixture(employee)

	rec := sendJSON(r, "POST", "/api/work-sheet", gin.H{
		"task": "support", "hours": "8", "date": "2024-07-01",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.tasks, 1)
	assert.Equal(t, 8, repo.tasks[0].Hours)
	assert.Equal(t, "emp@x.com", repo.tasks[0].Email)
}

// Hours carry no range or type validation, unlike payment year and month:
// junk coerces to zero and the entry is stored anyway. Shipped behavior,
// pinned down rather than fixed.
func TestTaskCreate_JunkHoursStoredAsZero(t *testing.T) {
	repo, r := newTaskFixture(employee)

	rec := sendJSON(r, "POST", "/api/work-sheet", gin.H{
		"task": "support", "hours": "lots", "date": "2024-07-01",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.tasks, 1)
	assert.Equal(t, 0, repo.tasks[0].Hours)
}

func TestTaskUpdate_ForeignEntryIsNoOp(t *testing.T) {
	repo, r := newTaskFixture(employee)
	sendJSON(r, "POST", "/api/work-sheet", gin.H{"task": "support", "hours": 8})
	task := repo.tasks[0]
	task.Email = "other@x.com"

	rec := sendJSON(r, "PUT", "/api/work-sheet/"+task.ID.Hex(), gin.H{"task": "hijacked", "hours": 1})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"matchedCount":0`)
	assert.Equal(t, "support", task.Task)
}

func TestTaskUpdate_OwnEntry(t *testing.T) {
	repo, r := newTaskFixture(employee)
	sendJSON(r, "POST", "/api/work-sheet", gin.H{"task": "support", "hours": 8})
	id := repo.tasks[0].ID.Hex()

	rec := sendJSON(r, "PUT", "/api/work-sheet/"+id, gin.H{"task": "reviews", "hours": 6, "date": "2024-07-02"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "reviews", repo.tasks[0].Task)
	assert.Equal(t, 6, repo.tasks[0].Hours)
}

func TestTaskDelete_OwnEntry(t *testing.T) {
	repo, r := newTaskFixture(employee)
	sendJSON(r, "POST", "/api/work-sheet", gin.H{"task": "support", "hours": 8})
	id := repo.tasks[0].ID.Hex()

	req := httptest.NewRequest("DELETE", "/api/work-sheet/"+id, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, repo.tasks)
}

func TestTaskUpdate_BadID(t *testing.T) {
	_, r := newTaskFixture(employee)

	rec := sendJSON(r, "PUT", "/api/work-sheet/not-hex", gin.H{"task": "x"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
