package service_test

import (
	"context"
	"testing"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"github.com/google/uuid"
)

func TestDepartmentCodeIsUniquePerCollege(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, b := f.college(t, "AAA"), f.college(t, "BBB")

	first := f.department(t, a, "cse")
	if first.Code != "CSE" {
		t.Errorf("code = %q, want CSE", first.Code)
	}
	if !first.IsActive {
		t.Error("new department should be active")
	}
	if first.College == nil || first.College.Code != "AAA" {
		t.Errorf("college ref = %+v, want AAA", first.College)
	}

	// Same code under another college is fine.
	f.department(t, b, "CSE")

	_, err := f.depts.Create(ctx, a.ID, model.DepartmentRequest{Name: "Again", Code: " Cse "})
	se := wantKind(t, err, service.KindConflict)
	if se.Message != "Department with this code already exists in this college" {
		t.Errorf("message = %q", se.Message)
	}
	if se.Field != "code" {
		t.Errorf("field = %q, want code", se.Field)
	}
}

func TestDepartmentUpdateRejectsCodeOfSibling(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.college(t, "AAA")
	f.department(t, c, "CSE")
	ece := f.department(t, c, "ECE")

	_, err := f.depts.Update(ctx, ece.ID, model.DepartmentRequest{Name: "Renamed", Code: "cse"})
	se := wantKind(t, err, service.KindConflict)
	if se.Message != "Another department with this code already exists in this college" {
		t.Errorf("message = %q", se.Message)
	}

	inactive := false
	updated, err := f.depts.Update(ctx, ece.ID, model.DepartmentRequest{Name: "Electronics", Code: "ece", IsActive: &inactive})
	if err != nil {
		t.Fatalf("update own code: %v", err)
	}
	if updated.Name != "Electronics" || updated.IsActive {
		t.Errorf("updated = %+v", updated)
	}
}

func TestToggleStatusTwiceRestores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.department(t, f.college(t, "AAA"), "CSE")

	fac, err := f.faculty.Create(ctx, d.ID, facultyRequest("EMP01", "ada@example.com"))
	if err != nil {
		t.Fatalf("create faculty: %v", err)
	}
	st, err := f.students.Create(ctx, d.ID, studentRequest("S001", "R001", "alan@example.com"))
	if err != nil {
		t.Fatalf("create student: %v", err)
	}
	sub, err := f.subjects.Create(ctx, d.ID, subjectRequest("CS101"))
	if err != nil {
		t.Fatalf("create subject: %v", err)
	}

	tests := []struct {
		entity string
		toggle func() (bool, string, error)
	}{
		{"Department", func() (bool, string, error) {
			got, msg, err := f.depts.ToggleStatus(ctx, d.ID)
			if err != nil {
				return false, "", err
			}
			return got.IsActive, msg, nil
		}},
		{"Faculty", func() (bool, string, error) {
			got, msg, err := f.faculty.ToggleStatus(ctx, fac.ID)
			if err != nil {
				return false, "", err
			}
			return got.IsActive, msg, nil
		}},
		{"Student", func() (bool, string, error) {
			got, msg, err := f.students.ToggleStatus(ctx, st.ID)
			if err != nil {
				return false, "", err
			}
			return got.IsActive, msg, nil
		}},
		{"Subject", func() (bool, string, error) {
			got, msg, err := f.subjects.ToggleStatus(ctx, sub.ID)
			if err != nil {
				return false, "", err
			}
			return got.IsActive, msg, nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.entity, func(t *testing.T) {
			active, msg, err := tt.toggle()
			if err != nil {
				t.Fatalf("first toggle: %v", err)
			}
			if active || msg != tt.entity+" deactivated successfully" {
				t.Errorf("after first toggle: active=%v msg=%q", active, msg)
			}

			active, msg, err = tt.toggle()
			if err != nil {
				t.Fatalf("second toggle: %v", err)
			}
			if !active || msg != tt.entity+" activated successfully" {
				t.Errorf("after second toggle: active=%v msg=%q", active, msg)
			}
		})
	}
}

func TestDepartmentUnknownCollegeOrID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.depts.Create(ctx, uuid.New(), model.DepartmentRequest{Name: "X", Code: "X"})
	se := wantKind(t, err, service.KindNotFound)
	if se.Message != "College not found" {
		t.Errorf("message = %q", se.Message)
	}

	_, _, err = f.depts.ToggleStatus(ctx, uuid.New())
	wantKind(t, err, service.KindNotFound)
	wantKind(t, f.depts.Delete(ctx, uuid.New()), service.KindNotFound)
}

func TestDepartmentListByCollegeSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.college(t, "AAA")
	f.department(t, c, "CSE")
	f.department(t, c, "ECE")
	f.department(t, f.college(t, "BBB"), "CSE")

	parent, depts, err := f.depts.ListByCollege(ctx, c.ID, "ec")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if parent.ID != c.ID {
		t.Errorf("parent = %v, want %v", parent.ID, c.ID)
	}
	if len(depts) != 1 || depts[0].Code != "ECE" {
		t.Errorf("depts = %+v, want only ECE", depts)
	}
}

func TestCollegeDeleteLeavesDepartmentsWithNullRef(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.college(t, "AAA")
	d := f.department(t, c, "CSE")

	if err := f.colleges.Delete(ctx, c.ID); err != nil {
		t.Fatalf("delete college: %v", err)
	}
	got, err := f.depts.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("get department: %v", err)
	}
	if got.College != nil {
		t.Errorf("college ref = %+v, want nil", got.College)
	}
	if got.CollegeID != c.ID {
		t.Errorf("college_id changed to %v", got.CollegeID)
	}
}
