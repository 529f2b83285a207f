package validator_test

import (
	"testing"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/validator"
	"github.com/gin-gonic/gin/binding"
)

func TestWhitespaceOnlyIsBlank(t *testing.T) {
	validator.Setup()

	tests := []struct {
		name string
		req  model.CollegeRequest
		want map[string]string
	}{
		{"Spaces", model.CollegeRequest{Name: "   ", Code: "OIT"}, map[string]string{"name": "name is a required field"}},
		{"TabsAndNewlines", model.CollegeRequest{Name: "Orbit", Code: "\t\n"}, map[string]string{"code": "code is a required field"}},
		{"Valid", model.CollegeRequest{Name: " Orbit ", Code: "oit"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.req)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected a validation error")
			}
			got := validator.TranslateErrors(err)
			for field, msg := range tt.want {
				if got[field] != msg {
					t.Errorf("%s = %q, want %q (all: %v)", field, got[field], msg, got)
				}
			}
		})
	}
}

func TestEnumTags(t *testing.T) {
	validator.Setup()

	req := model.SubjectRequest{Name: "Maths", Code: "MA101", Credits: 4, Semester: 1, Year: 1, Type: "Seminar"}
	err := binding.Validator.ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected unknown subject type to fail")
	}
	if _, ok := validator.TranslateErrors(err)["type"]; !ok {
		t.Errorf("errors = %v, want type", validator.TranslateErrors(err))
	}
}
