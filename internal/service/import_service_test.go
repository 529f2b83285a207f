package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"github.com/xuri/excelize/v2"
)

func importCSV(t *testing.T, f *fixture, body string, role model.Role) *model.BulkImportResult {
	t.Helper()
	res, err := f.imports.ImportUsers(context.Background(), "users.csv", int64(len(body)), strings.NewReader(body), role)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	return res
}

func TestImportCSVCollectsRowErrors(t *testing.T) {
	f := newFixture(t)
	register(t, f, "existing@example.com", model.RoleStudent)

	body := "\xef\xbb\xbfName,Email,Phone,Semester\n" +
		"Ada,ada@example.com,9800000000,1\n" +
		",,,\n" +
		"Dup,Existing@example.com,,\n" +
		"NoEmail,,,\n" +
		"Bad,not-an-email,,\n" +
		"Alan,alan@example.com,,3\n"
	res := importCSV(t, f, body, model.RoleStudent)

	if res.Total != 5 || res.Count != 2 {
		t.Fatalf("total/count = %d/%d, want 5/2", res.Total, res.Count)
	}
	want := []model.BulkImportRowError{
		{Row: 4, Email: "existing@example.com", Error: "User with this email already exists"},
		{Row: 5, Email: "", Error: "email is required"},
		{Row: 6, Email: "not-an-email", Error: "email is not a valid email address"},
	}
	if len(res.Errors) != len(want) {
		t.Fatalf("errors = %+v", res.Errors)
	}
	for i, w := range want {
		if res.Errors[i] != w {
			t.Errorf("error %d = %+v, want %+v", i, res.Errors[i], w)
		}
	}
}

func TestImportedUsersCanLogIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	importCSV(t, f, "name,email,semester\nAda,ada@example.com,2\n", model.RoleStudent)

	resp, err := f.auth.Login(ctx, model.LoginRequest{Email: "ada@example.com", Password: "Welcome@123"})
	if err != nil {
		t.Fatalf("login with default password: %v", err)
	}
	u := resp.User
	if u.Role != model.RoleStudent {
		t.Errorf("role = %q", u.Role)
	}
	if u.UserCode == nil || len(*u.UserCode) != 9 || !strings.HasPrefix(*u.UserCode, "STU") {
		t.Errorf("user code = %v, want STU plus six digits", u.UserCode)
	}
	if u.StudentDetails == nil || u.StudentDetails.Semester != "2" {
		t.Errorf("student details = %+v", u.StudentDetails)
	}
}

func TestImportFacultyXLSX(t *testing.T) {
	f := newFixture(t)

	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	rows := [][]any{
		{"Name", "Email", "Is Coordinator"},
		{"Ada", "ada@example.com", "yes"},
		{"Alan", "alan@example.com", "no"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := book.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	res, err := f.imports.ImportUsers(context.Background(), "Staff.XLSX", int64(buf.Len()), bytes.NewReader(buf.Bytes()), model.RoleFaculty)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Count != 2 || len(res.Errors) != 0 {
		t.Fatalf("result = %+v", res)
	}

	u, err := f.store.Users().GetByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if u.FacultyDetails == nil || !u.FacultyDetails.IsCoordinator {
		t.Errorf("faculty details = %+v", u.FacultyDetails)
	}
	if u.UserCode == nil || !strings.HasPrefix(*u.UserCode, "FAC") {
		t.Errorf("user code = %v", u.UserCode)
	}
}

func TestImportRejectsFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		filename string
		size     int64
		body     string
		role     model.Role
		want     error
	}{
		{"AdminRole", "users.csv", 10, "name,email\n", model.RoleAdmin, service.ErrUnsupportedRole},
		{"TooLarge", "users.csv", 2 << 20, "name,email\n", model.RoleStudent, service.ErrFileTooLarge},
		{"WrongExtension", "users.txt", 10, "name,email\n", model.RoleStudent, service.ErrUnsupportedFileType},
		{"MissingEmailColumn", "users.csv", 10, "name,phone\nAda,1\n", model.RoleStudent, service.ErrMissingColumns},
		{"Empty", "users.csv", 0, "", model.RoleStudent, service.ErrMissingColumns},
		{"BrokenWorkbook", "users.xlsx", 10, "not a zip", model.RoleStudent, service.ErrUnreadableFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.imports.ImportUsers(ctx, tt.filename, tt.size, strings.NewReader(tt.body), tt.role)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestImportDuplicateEmailCostsOneRow(t *testing.T) {
	f := newFixture(t)

	body := "name,email\n" +
		"One,one@example.com\n" +
		"Two,two@example.com\n" +
		"Again,ONE@example.com\n" +
		"Three,three@example.com\n"
	res := importCSV(t, f, body, model.RoleFaculty)

	if res.Total != 4 || res.Count != 3 {
		t.Fatalf("total/count = %d/%d, want 4/3", res.Total, res.Count)
	}
	if len(res.Errors) != 1 || res.Errors[0].Row != 4 || res.Errors[0].Email != "one@example.com" {
		t.Fatalf("errors = %+v", res.Errors)
	}
}
