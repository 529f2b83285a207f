package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { FailWithMessage(c, http.StatusBadRequest, ErrConflict, "taken", map[string]string{"code": "taken"}) })

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"Generated", "", false},
		{"Kept", "req-123_abc.def", true},
		{"Unsafe", "bad id\nwith newline", false},
		{"TooLong", strings.Repeat("a", 65), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(HeaderRequestID, tt.incoming)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(HeaderRequestID)
			if got == "" {
				t.Fatal("no request id header")
			}
			if (got == tt.incoming) != tt.keep {
				t.Errorf("header = %q, incoming %q, keep %v", got, tt.incoming, tt.keep)
			}

			var body Response
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Metadata.RequestID != got {
				t.Errorf("metadata request id = %q, header %q", body.Metadata.RequestID, got)
			}
			if body.Success || body.Error == nil || body.Error.Code != ErrConflict || body.Error.Fields["code"] != "taken" {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestSuccessListIncludesTotalAndParent(t *testing.T) {
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		SuccessList(c, []string{}, 0, map[string]string{"code": "CSE"})
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body struct {
		Total  *int              `json:"total"`
		Parent map[string]string `json:"parent"`
		Data   []string          `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Total == nil || *body.Total != 0 {
		t.Errorf("total = %v, want explicit 0", body.Total)
	}
	if body.Parent["code"] != "CSE" || body.Data == nil {
		t.Errorf("body = %+v", body)
	}
}
