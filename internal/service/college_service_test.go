package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"github.com/google/uuid"
)

func TestCollegeCodeNormalizedAndUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.colleges.Create(ctx, model.CollegeRequest{Name: "  Test  ", Code: " tst "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Code != "TST" || c.Name != "Test" {
		t.Errorf("college = %q/%q, want Test/TST", c.Name, c.Code)
	}
	if !c.CreatedAt.Equal(testNow) || !c.UpdatedAt.Equal(testNow) {
		t.Errorf("timestamps = %v/%v", c.CreatedAt, c.UpdatedAt)
	}

	got, err := f.colleges.Get(ctx, c.ID)
	if err != nil || got.Code != "TST" {
		t.Fatalf("get = %+v, %v", got, err)
	}

	_, err = f.colleges.Create(ctx, model.CollegeRequest{Name: "Other", Code: "TsT"})
	se := wantKind(t, err, service.KindConflict)
	if se.Message != "College with this code already exists" || se.Field != "code" {
		t.Errorf("error = %+v", se)
	}
}

func TestCollegeConcurrentCreateOneWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.colleges.Create(ctx, model.CollegeRequest{Name: "Race", Code: "RACE"})
		}()
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case service.KindOf(err) != service.KindConflict:
			t.Errorf("loser error = %v, want conflict", err)
		}
	}
	if wins != 1 {
		t.Fatalf("%d creates succeeded, want 1", wins)
	}
	list, err := f.colleges.List(ctx, "race")
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %d, %v", len(list), err)
	}
}

func TestCollegeUpdateKeepsOwnCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.college(t, "AAA")
	f.college(t, "BBB")

	updated, err := f.colleges.Update(ctx, a.ID, model.CollegeRequest{Name: "Renamed", Code: "aaa"})
	if err != nil {
		t.Fatalf("update with own code: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("name = %q", updated.Name)
	}

	_, err = f.colleges.Update(ctx, a.ID, model.CollegeRequest{Name: "Renamed", Code: "bbb"})
	wantKind(t, err, service.KindConflict)

	_, err = f.colleges.Update(ctx, uuid.New(), model.CollegeRequest{Name: "X", Code: "X"})
	wantKind(t, err, service.KindNotFound)
}

func TestProgramLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, b := f.college(t, "AAA"), f.college(t, "BBB")
	req := model.ProgramRequest{Name: "Bachelor of Technology", Code: "btech", Duration: "4 years"}

	p, err := f.programs.Create(ctx, a.ID, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Code != "BTECH" || p.College == nil || p.College.Code != "AAA" {
		t.Errorf("program = %+v", p)
	}
	if _, err := f.programs.Create(ctx, b.ID, req); err != nil {
		t.Fatalf("same code in other college: %v", err)
	}
	_, err = f.programs.Create(ctx, a.ID, req)
	se := wantKind(t, err, service.KindConflict)
	if se.Message != "Program with this code already exists in this college" {
		t.Errorf("message = %q", se.Message)
	}

	_, err = f.programs.Create(ctx, uuid.New(), req)
	wantKind(t, err, service.KindNotFound)

	req.Duration = "5 years"
	updated, err := f.programs.Update(ctx, p.ID, req)
	if err != nil || updated.Duration != "5 years" {
		t.Fatalf("update = %+v, %v", updated, err)
	}

	parent, programs, err := f.programs.ListByCollege(ctx, a.ID, "tech")
	if err != nil || parent.ID != a.ID || len(programs) != 1 {
		t.Fatalf("list = %v, %d, %v", parent, len(programs), err)
	}

	if err := f.programs.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	wantKind(t, f.programs.Delete(ctx, p.ID), service.KindNotFound)
}
