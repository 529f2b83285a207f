package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/config"
	"github.com/cpc-orbit/orbit-backend/internal/logger"
	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/repository/repotest"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"golang.org/x/crypto/bcrypt"
)

var (
	testNow = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	nopLog  = logger.Nop()
)

type fixture struct {
	store    *repotest.Store
	cfg      *config.Config
	colleges *service.CollegeService
	depts    *service.DepartmentService
	programs *service.ProgramService
	faculty  *service.FacultyService
	students *service.StudentService
	subjects *service.SubjectService
	auth     *service.AuthService
	imports  *service.ImportService
	stats    *service.StatsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repotest.NewStore()
	cfg := &config.Config{
		JWTSecret:           "test-secret",
		JWTExpiry:           time.Hour,
		BcryptCost:          bcrypt.MinCost,
		MaxUploadBytes:      1 << 20,
		BulkDefaultPassword: "Welcome@123",
	}
	log := nopLog

	f := &fixture{
		store:    store,
		cfg:      cfg,
		colleges: service.NewCollegeService(store.Colleges(), log),
		depts:    service.NewDepartmentService(store.Colleges(), store.Departments(), log),
		programs: service.NewProgramService(store.Colleges(), store.Programs(), log),
		faculty:  service.NewFacultyService(store.Departments(), store.Faculties(), log),
		students: service.NewStudentService(store.Departments(), store.Students(), log),
		subjects: service.NewSubjectService(store.Departments(), store.Faculties(), store.Subjects(), log),
		stats:    service.NewStatsService(store.Colleges(), store.Stats(), store.StatsCache(), time.Minute, log),
	}
	f.auth = service.NewAuthService(cfg, store.Users(), store.Tokens(), log)
	f.imports = service.NewImportService(cfg, f.auth, store.Users(), log)

	now := func() time.Time { return testNow }
	for _, c := range []interface{ SetClock(func() time.Time) }{
		f.colleges, f.depts, f.programs, f.faculty, f.students, f.subjects, f.auth, f.imports,
	} {
		c.SetClock(now)
	}
	return f
}

func (f *fixture) college(t *testing.T, code string) *model.College {
	t.Helper()
	c, err := f.colleges.Create(context.Background(), model.CollegeRequest{Name: "College " + code, Code: code})
	if err != nil {
		t.Fatalf("create college %s: %v", code, err)
	}
	return c
}

func (f *fixture) department(t *testing.T, college *model.College, code string) *model.Department {
	t.Helper()
	d, err := f.depts.Create(context.Background(), college.ID, model.DepartmentRequest{Name: "Dept " + code, Code: code})
	if err != nil {
		t.Fatalf("create department %s: %v", code, err)
	}
	return d
}

func facultyRequest(employeeID, email string) model.FacultyRequest {
	exp := 3
	return model.FacultyRequest{
		EmployeeID:    employeeID,
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         email,
		Phone:         "9800000000",
		Qualification: "PhD",
		Experience:    &exp,
		DateOfJoining: "2021-06-01",
	}
}

func studentRequest(studentID, roll, email string) model.StudentRequest {
	return model.StudentRequest{
		StudentID:       studentID,
		RollNumber:      roll,
		FirstName:       "Alan",
		LastName:        "Turing",
		Email:           email,
		Phone:           "9700000000",
		Year:            1,
		Semester:        1,
		DateOfAdmission: "2024-08-01",
	}
}

func subjectRequest(code string, prereqs ...*model.Subject) model.SubjectRequest {
	req := model.SubjectRequest{Name: "Subject " + code, Code: code, Credits: 4, Semester: 1, Year: 1}
	for _, p := range prereqs {
		req.Prerequisites = append(req.Prerequisites, p.ID)
	}
	return req
}

// wantKind fails the test unless err is a service error of the given kind.
func wantKind(t *testing.T, err error, kind service.ErrorKind) *service.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %d, got nil", kind)
	}
	var se *service.Error
	if !errors.As(err, &se) {
		t.Fatalf("expected *service.Error, got %T: %v", err, err)
	}
	if se.Kind != kind {
		t.Fatalf("kind = %d, want %d (%s)", se.Kind, kind, se.Message)
	}
	return se
}
