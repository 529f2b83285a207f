package service_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"github.com/google/uuid"
)

func TestFacultyCreateSnapshotsCollegeAndDefaults(t *testing.T) {
	f := newFixture(t)
	c := f.college(t, "AAA")
	d := f.department(t, c, "CSE")

	fac, err := f.faculty.Create(context.Background(), d.ID, facultyRequest("emp01", "ADA@Example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if fac.CollegeID != c.ID {
		t.Errorf("college_id = %v, want %v", fac.CollegeID, c.ID)
	}
	if fac.Department == nil || fac.Department.Code != "CSE" {
		t.Errorf("department ref = %+v", fac.Department)
	}
	if fac.Designation != model.DesignationAssistantProfessor {
		t.Errorf("designation = %q", fac.Designation)
	}
	if fac.EmployeeID != "EMP01" || fac.Email != "ada@example.com" {
		t.Errorf("normalized fields = %q %q", fac.EmployeeID, fac.Email)
	}
	if !fac.CreatedAt.Equal(testNow) {
		t.Errorf("created_at = %v, want %v", fac.CreatedAt, testNow)
	}

	body, err := json.Marshal(fac)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(body), `"full_name":"Ada Lovelace"`) {
		t.Errorf("json missing full_name: %s", body)
	}
}

func TestFacultyMissingDepartmentBeforeUniqueness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.department(t, f.college(t, "AAA"), "CSE")
	if _, err := f.faculty.Create(ctx, d.ID, facultyRequest("EMP01", "ada@example.com")); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Same identifiers, unknown department: the 404 wins over the conflict.
	_, err := f.faculty.Create(ctx, uuid.New(), facultyRequest("EMP01", "ada@example.com"))
	se := wantKind(t, err, service.KindNotFound)
	if se.Message != "Department not found" {
		t.Errorf("message = %q", se.Message)
	}
}

func TestFacultyUniqueIdentifiers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.department(t, f.college(t, "AAA"), "CSE")
	first, err := f.faculty.Create(ctx, d.ID, facultyRequest("EMP01", "ada@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("EmployeeID", func(t *testing.T) {
		_, err := f.faculty.Create(ctx, d.ID, facultyRequest("emp01", "other@example.com"))
		se := wantKind(t, err, service.KindConflict)
		if se.Message != "Faculty with this employee ID already exists" || se.Field != "employee_id" {
			t.Errorf("got %q on %q", se.Message, se.Field)
		}
	})

	t.Run("Email", func(t *testing.T) {
		_, err := f.faculty.Create(ctx, d.ID, facultyRequest("EMP02", "ADA@example.com"))
		se := wantKind(t, err, service.KindConflict)
		if se.Message != "Faculty with this email already exists" || se.Field != "email" {
			t.Errorf("got %q on %q", se.Message, se.Field)
		}
	})

	t.Run("UpdateAgainstOther", func(t *testing.T) {
		second, err := f.faculty.Create(ctx, d.ID, facultyRequest("EMP03", "grace@example.com"))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		_, err = f.faculty.Update(ctx, second.ID, facultyRequest("EMP03", first.Email))
		se := wantKind(t, err, service.KindConflict)
		if se.Message != "Another faculty with this email already exists" {
			t.Errorf("message = %q", se.Message)
		}
	})

	t.Run("UpdateKeepsOwnIdentifiers", func(t *testing.T) {
		req := facultyRequest("EMP01", "ada@example.com")
		req.Designation = model.DesignationProfessor
		got, err := f.faculty.Update(ctx, first.ID, req)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.Designation != model.DesignationProfessor || got.DepartmentID != d.ID {
			t.Errorf("updated = %+v", got)
		}
	})
}

func TestFacultyOptionsListsActiveOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.department(t, f.college(t, "AAA"), "CSE")
	active, _ := f.faculty.Create(ctx, d.ID, facultyRequest("EMP01", "a@example.com"))
	idle, _ := f.faculty.Create(ctx, d.ID, facultyRequest("EMP02", "b@example.com"))
	if _, _, err := f.faculty.ToggleStatus(ctx, idle.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	opts, err := f.faculty.Options(ctx, d.ID)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if len(opts) != 1 || opts[0].ID != active.ID {
		t.Errorf("options = %+v, want only %v", opts, active.ID)
	}
}
