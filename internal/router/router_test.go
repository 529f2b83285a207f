package router_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/config"
	"github.com/cpc-orbit/orbit-backend/internal/handler"
	"github.com/cpc-orbit/orbit-backend/internal/logger"
	"github.com/cpc-orbit/orbit-backend/internal/repository/repotest"
	"github.com/cpc-orbit/orbit-backend/internal/router"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"github.com/cpc-orbit/orbit-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Total   *int            `json:"total"`
	Error   *struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
}

func (e envelope) code() string {
	if e.Error == nil {
		return ""
	}
	return e.Error.Code
}

type testServer struct {
	engine *gin.Engine
}

func newServer(t *testing.T) *testServer {
	t.Helper()
	validator.Setup()

	cfg := &config.Config{
		GinMode:             gin.TestMode,
		JWTSecret:           "router-secret",
		JWTExpiry:           time.Hour,
		BcryptCost:          bcrypt.MinCost,
		MaxUploadBytes:      1 << 20,
		BulkDefaultPassword: "Welcome@123",
		StatsCacheTTL:       time.Minute,
		AuthRateLimit:       1000,
	}
	log := logger.Nop()
	store := repotest.NewStore()

	authService := service.NewAuthService(cfg, store.Users(), store.Tokens(), log)
	stats := service.NewStatsService(store.Colleges(), store.Stats(), store.StatsCache(), cfg.StatsCacheTTL, log)
	h := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Import:     handler.NewImportHandler(service.NewImportService(cfg, authService, store.Users(), log), cfg.MaxUploadBytes),
		College:    handler.NewCollegeHandler(service.NewCollegeService(store.Colleges(), log), stats),
		Department: handler.NewDepartmentHandler(service.NewDepartmentService(store.Colleges(), store.Departments(), log), stats),
		Program:    handler.NewProgramHandler(service.NewProgramService(store.Colleges(), store.Programs(), log), stats),
		Faculty:    handler.NewFacultyHandler(service.NewFacultyService(store.Departments(), store.Faculties(), log), stats),
		Student:    handler.NewStudentHandler(service.NewStudentService(store.Departments(), store.Students(), log), stats),
		Subject:    handler.NewSubjectHandler(service.NewSubjectService(store.Departments(), store.Faculties(), store.Subjects(), log), stats),
	}
	return &testServer{engine: router.SetupRouter(authService, h, cfg, log)}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.serve(t, req)
}

func (s *testServer) serve(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode %q: %v", req.Method, req.URL.Path, w.Body.String(), err)
	}
	return w.Code, env
}

// login registers an account with role and returns its bearer token.
func (s *testServer) login(t *testing.T, email, role string) string {
	t.Helper()
	creds := map[string]string{"name": "Test User", "email": email, "password": "secret123", "role": role}
	if status, env := s.do(t, http.MethodPost, "/api/auth/register", "", creds); status != http.StatusCreated {
		t.Fatalf("register %s: %d %s", email, status, env.code())
	}
	status, env := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": "secret123"})
	if status != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, status, env.code())
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil || out.Token == "" {
		t.Fatalf("login %s: no token in %s", email, env.Data)
	}
	return out.Token
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}

type entity struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	FullName string `json:"full_name"`
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	status, env := s.do(t, http.MethodGet, "/health", "", nil)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("health = %d %+v", status, env)
	}
}

func TestAdminRoutesRequireAdminToken(t *testing.T) {
	s := newServer(t)
	student := s.login(t, "student@example.com", "student")

	tests := []struct {
		name   string
		token  string
		status int
		code   string
	}{
		{"NoToken", "", http.StatusUnauthorized, "TOKEN_REQUIRED"},
		{"Garbage", "garbage", http.StatusUnauthorized, "TOKEN_INVALID"},
		{"StudentRole", student, http.StatusForbidden, "ADMIN_ACCESS_ONLY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := s.do(t, http.MethodGet, "/api/admin/colleges", tt.token, nil)
			if status != tt.status || env.code() != tt.code {
				t.Fatalf("got %d %s, want %d %s", status, env.code(), tt.status, tt.code)
			}
		})
	}
}

func TestCollegeCreateAndGet(t *testing.T) {
	s := newServer(t)
	admin := s.login(t, "admin@example.com", "admin")

	status, env := s.do(t, http.MethodPost, "/api/admin/colleges", admin, map[string]string{"name": "Orbit Institute", "code": " oit "})
	if status != http.StatusCreated {
		t.Fatalf("create = %d %s", status, env.code())
	}
	if env.Message != "College created successfully" {
		t.Errorf("message = %q", env.Message)
	}
	created := decode[entity](t, env.Data)
	if created.Code != "OIT" {
		t.Errorf("code = %q, want OIT", created.Code)
	}

	status, env = s.do(t, http.MethodGet, "/api/admin/colleges/"+created.ID, admin, nil)
	if status != http.StatusOK || decode[entity](t, env.Data).ID != created.ID {
		t.Fatalf("get = %d %s", status, env.Data)
	}

	status, env = s.do(t, http.MethodGet, "/api/admin/colleges", admin, nil)
	if status != http.StatusOK || env.Total == nil || *env.Total != 1 {
		t.Fatalf("list = %d total %v", status, env.Total)
	}
}

func TestConcurrentDuplicateCollege(t *testing.T) {
	s := newServer(t)
	admin := s.login(t, "admin@example.com", "admin")

	var wg sync.WaitGroup
	statuses := make([]int, 2)
	for i := range statuses {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body, _ := json.Marshal(map[string]string{"name": "Same", "code": "SAME"})
			req := httptest.NewRequest(http.MethodPost, "/api/admin/colleges", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+admin)
			w := httptest.NewRecorder()
			s.engine.ServeHTTP(w, req)
			statuses[i] = w.Code
		}()
	}
	wg.Wait()

	sort.Ints(statuses)
	if statuses[0] != http.StatusCreated || statuses[1] != http.StatusBadRequest {
		t.Fatalf("statuses = %v, want one 201 and one 400", statuses)
	}
	_, env := s.do(t, http.MethodGet, "/api/admin/colleges", admin, nil)
	if env.Total == nil || *env.Total != 1 {
		t.Fatalf("total = %v, want 1", env.Total)
	}
}

func TestRequestErrors(t *testing.T) {
	s := newServer(t)
	admin := s.login(t, "admin@example.com", "admin")

	t.Run("MalformedID", func(t *testing.T) {
		status, env := s.do(t, http.MethodGet, "/api/admin/colleges/not-a-uuid", admin, nil)
		if status != http.StatusBadRequest || env.code() != "INVALID_ID" {
			t.Fatalf("got %d %s", status, env.code())
		}
	})

	t.Run("MissingFields", func(t *testing.T) {
		status, env := s.do(t, http.MethodPost, "/api/admin/colleges", admin, map[string]string{"code": "X"})
		if status != http.StatusBadRequest || env.code() != "VALIDATION_ERROR" {
			t.Fatalf("got %d %s", status, env.code())
		}
		if _, ok := env.Error.Fields["name"]; !ok {
			t.Errorf("fields = %v, want name", env.Error.Fields)
		}
	})

	t.Run("BlankFields", func(t *testing.T) {
		status, env := s.do(t, http.MethodPost, "/api/admin/colleges", admin, map[string]string{"name": "   ", "code": " \t "})
		if status != http.StatusBadRequest || env.code() != "VALIDATION_ERROR" {
			t.Fatalf("got %d %s", status, env.code())
		}
		for _, field := range []string{"name", "code"} {
			if _, ok := env.Error.Fields[field]; !ok {
				t.Errorf("fields = %v, want %s", env.Error.Fields, field)
			}
		}
		_, env = s.do(t, http.MethodGet, "/api/admin/colleges", admin, nil)
		if env.Total == nil || *env.Total != 0 {
			t.Errorf("total = %v, want 0", env.Total)
		}
	})

	t.Run("PasswordTooLong", func(t *testing.T) {
		status, env := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"name": "Long", "email": "long@example.com", "password": strings.Repeat("p", 100), "role": "student",
		})
		if status != http.StatusBadRequest || env.code() != "VALIDATION_ERROR" {
			t.Fatalf("got %d %s", status, env.code())
		}
		if _, ok := env.Error.Fields["password"]; !ok {
			t.Errorf("fields = %v, want password", env.Error.Fields)
		}
	})

	t.Run("UnknownCollege", func(t *testing.T) {
		status, env := s.do(t, http.MethodGet, "/api/admin/colleges/00000000-0000-0000-0000-000000000001", admin, nil)
		if status != http.StatusNotFound || env.code() != "NOT_FOUND" {
			t.Fatalf("got %d %s", status, env.code())
		}
	})

	t.Run("UnknownAPIPath", func(t *testing.T) {
		status, env := s.do(t, http.MethodGet, "/api/nowhere", "", nil)
		if status != http.StatusNotFound || env.code() != "NOT_FOUND" {
			t.Fatalf("got %d %s", status, env.code())
		}
	})
}

func TestLogoutRevokesSession(t *testing.T) {
	s := newServer(t)
	token := s.login(t, "user@example.com", "faculty")

	if status, _ := s.do(t, http.MethodGet, "/api/auth/me", token, nil); status != http.StatusOK {
		t.Fatalf("me before logout = %d", status)
	}
	if status, env := s.do(t, http.MethodPost, "/api/auth/logout", token, nil); status != http.StatusOK {
		t.Fatalf("logout = %d %s", status, env.code())
	}
	status, env := s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	if status != http.StatusUnauthorized || env.code() != "TOKEN_REVOKED" {
		t.Fatalf("me after logout = %d %s", status, env.code())
	}
}

func TestBulkRegister(t *testing.T) {
	s := newServer(t)
	admin := s.login(t, "admin@example.com", "admin")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("role", "student"); err != nil {
		t.Fatal(err)
	}
	part, err := mw.CreateFormFile("file", "students.csv")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("name,email\nAda,ada@example.com\nAdmin,admin@example.com\n"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/bulk-register", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+admin)
	status, env := s.serve(t, req)
	if status != http.StatusCreated {
		t.Fatalf("bulk register = %d %s", status, env.code())
	}

	res := decode[struct {
		Count  int `json:"count"`
		Total  int `json:"total"`
		Errors []struct {
			Row int `json:"row"`
		} `json:"errors"`
	}](t, env.Data)
	if res.Count != 1 || res.Total != 2 || len(res.Errors) != 1 || res.Errors[0].Row != 3 {
		t.Fatalf("result = %+v", res)
	}

	status, _ = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ada@example.com", "password": "Welcome@123"})
	if status != http.StatusOK {
		t.Fatalf("imported login = %d", status)
	}
}

func TestBulkRegisterWithoutFile(t *testing.T) {
	s := newServer(t)
	admin := s.login(t, "admin@example.com", "admin")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("role", "student")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/bulk-register", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+admin)
	status, env := s.serve(t, req)
	if status != http.StatusBadRequest || env.code() != "FILE_REQUIRED" {
		t.Fatalf("got %d %s", status, env.code())
	}
}

func TestDepartmentHierarchy(t *testing.T) {
	s := newServer(t)
	admin := s.login(t, "admin@example.com", "admin")

	_, env := s.do(t, http.MethodPost, "/api/admin/colleges", admin, map[string]string{"name": "Orbit", "code": "OIT"})
	college := decode[entity](t, env.Data)

	status, env := s.do(t, http.MethodPost, "/api/admin/colleges/"+college.ID+"/departments", admin,
		map[string]string{"name": "Computer Science", "code": "cse"})
	if status != http.StatusCreated {
		t.Fatalf("create department = %d %s", status, env.code())
	}
	dept := decode[entity](t, env.Data)

	status, env = s.do(t, http.MethodPost, "/api/admin/departments/"+dept.ID+"/faculties", admin, map[string]any{
		"employee_id": "EMP01", "first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com",
		"phone": "9800000000", "qualification": "PhD", "experience": 3, "date_of_joining": "2021-06-01",
	})
	if status != http.StatusCreated {
		t.Fatalf("create faculty = %d %s %v", status, env.code(), env.Error)
	}
	if f := decode[entity](t, env.Data); f.FullName != "Ada Lovelace" {
		t.Errorf("full_name = %q", f.FullName)
	}

	status, env = s.do(t, http.MethodPatch, "/api/admin/departments/"+dept.ID+"/toggle-status", admin, nil)
	if status != http.StatusOK || env.Message != "Department deactivated successfully" {
		t.Fatalf("toggle = %d %q", status, env.Message)
	}

	subject := func(code string, prereqs ...string) (int, envelope) {
		return s.do(t, http.MethodPost, "/api/admin/departments/"+dept.ID+"/subjects", admin, map[string]any{
			"name": "Subject " + code, "code": code, "credits": 4, "semester": 1, "year": 1, "prerequisites": prereqs,
		})
	}
	status, env = subject("CS101")
	if status != http.StatusCreated {
		t.Fatalf("create subject = %d %s %v", status, env.code(), env.Error)
	}
	base := decode[entity](t, env.Data)
	if status, env = subject("CS201", base.ID); status != http.StatusCreated {
		t.Fatalf("create dependent subject = %d %s", status, env.code())
	}

	status, env = s.do(t, http.MethodDelete, "/api/admin/subjects/"+base.ID, admin, nil)
	if status != http.StatusConflict || env.code() != "DEPENDENCY_EXISTS" {
		t.Fatalf("delete prerequisite = %d %s", status, env.code())
	}

	status, env = s.do(t, http.MethodGet, "/api/admin/colleges/"+college.ID+"/stats", admin, nil)
	if status != http.StatusOK {
		t.Fatalf("stats = %d", status)
	}
	stats := decode[struct {
		Departments int `json:"departments"`
		Faculty     int `json:"faculty"`
		Subjects    int `json:"subjects"`
	}](t, env.Data)
	if stats.Departments != 1 || stats.Faculty != 1 || stats.Subjects != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestStatsFollowChildWrites(t *testing.T) {
	s := newServer(t)
	admin := s.login(t, "admin@example.com", "admin")

	_, env := s.do(t, http.MethodPost, "/api/admin/colleges", admin, map[string]string{"name": "Orbit", "code": "OIT"})
	college := decode[entity](t, env.Data)

	type counts struct {
		Departments int `json:"departments"`
		Programs    int `json:"programs"`
		Subjects    int `json:"subjects"`
	}
	stats := func() counts {
		t.Helper()
		status, env := s.do(t, http.MethodGet, "/api/admin/colleges/"+college.ID+"/stats", admin, nil)
		if status != http.StatusOK {
			t.Fatalf("stats = %d %s", status, env.code())
		}
		return decode[counts](t, env.Data)
	}

	if got := stats(); got != (counts{}) {
		t.Fatalf("initial stats = %+v", got)
	}

	_, env = s.do(t, http.MethodPost, "/api/admin/colleges/"+college.ID+"/departments", admin,
		map[string]string{"name": "Computer Science", "code": "CSE"})
	dept := decode[entity](t, env.Data)
	s.do(t, http.MethodPost, "/api/admin/colleges/"+college.ID+"/programs", admin,
		map[string]string{"name": "B.Tech", "code": "BTECH", "duration": "4 years"})
	_, env = s.do(t, http.MethodPost, "/api/admin/departments/"+dept.ID+"/subjects", admin,
		map[string]any{"name": "Programming", "code": "CS101", "credits": 4, "semester": 1, "year": 1})
	subject := decode[entity](t, env.Data)

	if got := stats(); got != (counts{Departments: 1, Programs: 1, Subjects: 1}) {
		t.Fatalf("after creates = %+v", got)
	}

	if status, env := s.do(t, http.MethodDelete, "/api/admin/subjects/"+subject.ID, admin, nil); status != http.StatusOK {
		t.Fatalf("delete subject = %d %s", status, env.code())
	}
	if got := stats(); got.Subjects != 0 {
		t.Errorf("after delete = %+v", got)
	}
}
