package service_test

import (
	"context"
	"testing"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"github.com/google/uuid"
)

func TestSubjectPrerequisiteBlocksDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.department(t, f.college(t, "AAA"), "CSE")

	base, err := f.subjects.Create(ctx, d.ID, subjectRequest("cs101"))
	if err != nil {
		t.Fatalf("create base: %v", err)
	}
	next, err := f.subjects.Create(ctx, d.ID, subjectRequest("CS201", base, base))
	if err != nil {
		t.Fatalf("create dependent: %v", err)
	}
	if len(next.PrerequisiteIDs) != 1 {
		t.Errorf("prerequisite ids = %v, want one after de-duplication", next.PrerequisiteIDs)
	}
	if len(next.Prerequisites) != 1 || next.Prerequisites[0].Code != "CS101" {
		t.Errorf("populated prerequisites = %+v", next.Prerequisites)
	}

	se := wantKind(t, f.subjects.Delete(ctx, base.ID), service.KindReferenced)
	if se.Message != "Cannot delete subject as it is a prerequisite for other subjects" {
		t.Errorf("message = %q", se.Message)
	}

	if err := f.subjects.Delete(ctx, next.ID); err != nil {
		t.Fatalf("delete dependent: %v", err)
	}
	if err := f.subjects.Delete(ctx, base.ID); err != nil {
		t.Fatalf("delete base once free: %v", err)
	}
}

func TestSubjectDeleteUnknown(t *testing.T) {
	f := newFixture(t)
	wantKind(t, f.subjects.Delete(context.Background(), uuid.New()), service.KindNotFound)
}

func TestSubjectPrerequisiteValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.department(t, f.college(t, "AAA"), "CSE")
	base, err := f.subjects.Create(ctx, d.ID, subjectRequest("CS101"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("Self", func(t *testing.T) {
		_, err := f.subjects.Update(ctx, base.ID, subjectRequest("CS101", base))
		se := wantKind(t, err, service.KindValidation)
		if se.Field != "prerequisites" {
			t.Errorf("field = %q", se.Field)
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		req := subjectRequest("CS301")
		req.Prerequisites = []uuid.UUID{uuid.New()}
		_, err := f.subjects.Create(ctx, d.ID, req)
		se := wantKind(t, err, service.KindValidation)
		if se.Message != "One or more prerequisite subjects were not found" {
			t.Errorf("message = %q", se.Message)
		}
	})
}

func TestSubjectFacultyMustBeActiveInDepartment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.college(t, "AAA")
	cse, ece := f.department(t, c, "CSE"), f.department(t, c, "ECE")

	own, err := f.faculty.Create(ctx, cse.ID, facultyRequest("EMP01", "a@example.com"))
	if err != nil {
		t.Fatalf("create faculty: %v", err)
	}
	foreign, err := f.faculty.Create(ctx, ece.ID, facultyRequest("EMP02", "b@example.com"))
	if err != nil {
		t.Fatalf("create faculty: %v", err)
	}

	req := subjectRequest("CS101")
	req.FacultyID = &foreign.ID
	_, err = f.subjects.Create(ctx, cse.ID, req)
	se := wantKind(t, err, service.KindValidation)
	if se.Field != "faculty_id" {
		t.Errorf("field = %q", se.Field)
	}

	req.FacultyID = &own.ID
	sub, err := f.subjects.Create(ctx, cse.ID, req)
	if err != nil {
		t.Fatalf("create with own faculty: %v", err)
	}
	if sub.Faculty == nil || sub.Faculty.EmployeeID != "EMP01" {
		t.Errorf("faculty ref = %+v", sub.Faculty)
	}

	if _, _, err := f.faculty.ToggleStatus(ctx, own.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	_, err = f.subjects.Update(ctx, sub.ID, req)
	wantKind(t, err, service.KindValidation)
}

func TestSubjectCodeUniquePerDepartment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.college(t, "AAA")
	cse, ece := f.department(t, c, "CSE"), f.department(t, c, "ECE")

	sub, err := f.subjects.Create(ctx, cse.ID, subjectRequest("CS101"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sub.Type != model.SubjectTheory || sub.Program != model.ProgramBachelor {
		t.Errorf("defaults = %q %q", sub.Type, sub.Program)
	}
	if _, err := f.subjects.Create(ctx, ece.ID, subjectRequest("cs101")); err != nil {
		t.Fatalf("same code in other department: %v", err)
	}
	_, err = f.subjects.Create(ctx, cse.ID, subjectRequest("cs101"))
	se := wantKind(t, err, service.KindConflict)
	if se.Message != "Subject with this code already exists in this department" {
		t.Errorf("message = %q", se.Message)
	}
}

func TestSubjectListOrderedByYearSemesterCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.department(t, f.college(t, "AAA"), "CSE")

	for _, r := range []model.SubjectRequest{
		{Name: "C", Code: "CS301", Credits: 3, Year: 2, Semester: 3},
		{Name: "B", Code: "CS102", Credits: 3, Year: 1, Semester: 1},
		{Name: "A", Code: "CS101", Credits: 3, Year: 1, Semester: 1},
		{Name: "D", Code: "CS201", Credits: 3, Year: 1, Semester: 2},
	} {
		if _, err := f.subjects.Create(ctx, d.ID, r); err != nil {
			t.Fatalf("create %s: %v", r.Code, err)
		}
	}

	_, subjects, err := f.subjects.ListByDepartment(ctx, d.ID, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"CS101", "CS102", "CS201", "CS301"}
	if len(subjects) != len(want) {
		t.Fatalf("got %d subjects, want %d", len(subjects), len(want))
	}
	for i, code := range want {
		if subjects[i].Code != code {
			t.Errorf("position %d = %s, want %s", i, subjects[i].Code, code)
		}
	}
}
