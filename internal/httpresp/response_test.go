package httpresp

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestOK(t *testing.T) {
	c, w := newTestContext()

	OK(c, gin.H{"message": "done"})

	if w.Code != 200 {
		t.Errorf("status = %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["message"] != "done" {
		t.Errorf("message = %q, want done", body["message"])
	}
}

func TestCreated(t *testing.T) {
	c, w := newTestContext()

	Created(c, gin.H{"id": 1})

	if w.Code != 201 {
		t.Errorf("status = %d, want 201", w.Code)
	}
}

func TestList(t *testing.T) {
	c, w := newTestContext()

	List(c, []string{"a", "b"}, 7)

	if w.Code != 200 {
		t.Errorf("status = %d, want 200", w.Code)
	}
	var body ListResponse[string]
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if len(body.Data) != 2 || body.Data[0] != "a" {
		t.Errorf("data = %v, want [a b]", body.Data)
	}
	if body.Total != 7 {
		t.Errorf("total = %d, want 7", body.Total)
	}
}
