package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/config"
	"github.com/cpc-orbit/orbit-backend/internal/database"
	"github.com/cpc-orbit/orbit-backend/internal/logger"
	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/repository"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"github.com/google/uuid"
)

// seed builds one demo college with two departments and a handful of people
// and subjects in each. Re-running it skips records that already exist.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	collegeRepo := repository.NewCollegeRepository(pool)
	deptRepo := repository.NewDepartmentRepository(pool)
	facultyRepo := repository.NewFacultyRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)

	quiet := logger.Nop()
	collegeService := service.NewCollegeService(collegeRepo, quiet)
	deptService := service.NewDepartmentService(collegeRepo, deptRepo, quiet)
	programService := service.NewProgramService(collegeRepo, repository.NewProgramRepository(pool), quiet)
	facultyService := service.NewFacultyService(deptRepo, facultyRepo, quiet)
	studentService := service.NewStudentService(deptRepo, repository.NewStudentRepository(pool), quiet)
	subjectService := service.NewSubjectService(deptRepo, facultyRepo, subjectRepo, quiet)

	fmt.Println("=== Seeding demo college ===")

	college, err := collegeService.Create(ctx, model.CollegeRequest{Name: "Orbit Institute of Technology", Code: "OIT"})
	if service.KindOf(err) == service.KindConflict {
		college, err = collegeRepo.GetByCode(ctx, "OIT")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed college")
	}
	fmt.Printf("College %s (%s)\n", college.Name, college.ID)

	for _, p := range []model.ProgramRequest{
		{Name: "Bachelor of Technology", Code: "BTECH", Duration: "4 years"},
		{Name: "Master of Technology", Code: "MTECH", Duration: "2 years"},
	} {
		report("program "+p.Code, ignoreConflict(programService.Create(ctx, college.ID, p)))
	}

	depts := []struct {
		name, code string
		subjects   []string
	}{
		{"Computer Science and Engineering", "CSE", []string{"Programming Fundamentals", "Data Structures", "Algorithms"}},
		{"Electronics and Communication", "ECE", []string{"Circuit Theory", "Signals and Systems", "Digital Communication"}},
	}

	for d, def := range depts {
		dept, err := deptService.Create(ctx, college.ID, model.DepartmentRequest{Name: def.name, Code: def.code})
		if service.KindOf(err) == service.KindConflict {
			dept, err = deptRepo.GetByCode(ctx, college.ID, def.code)
		}
		if err != nil {
			log.Fatal().Err(err).Str("code", def.code).Msg("Failed to seed department")
		}
		fmt.Printf("Department %s (%s)\n", dept.Code, dept.ID)

		var facultyID *uuid.UUID
		for i := 1; i <= 3; i++ {
			exp := 2 * i
			employeeID := fmt.Sprintf("EMP%s%03d", def.code, i)
			f, err := facultyService.Create(ctx, dept.ID, model.FacultyRequest{
				EmployeeID:    employeeID,
				FirstName:     "Faculty",
				LastName:      fmt.Sprintf("%s %d", def.code, i),
				Email:         fmt.Sprintf("faculty%d.%s@orbit.edu", i, def.code),
				Phone:         fmt.Sprintf("98%08d", d*100+i),
				Qualification: "Ph.D.",
				Experience:    &exp,
				DateOfJoining: "2020-07-01",
			})
			if service.KindOf(err) == service.KindConflict {
				f, err = facultyRepo.GetByEmployeeID(ctx, employeeID)
			}
			report("faculty "+employeeID, err)
			if err == nil && facultyID == nil {
				facultyID = &f.ID
			}
		}

		for i := 1; i <= 10; i++ {
			req := model.StudentRequest{
				StudentID:       fmt.Sprintf("%s2024%03d", def.code, i),
				RollNumber:      fmt.Sprintf("%02d", i),
				FirstName:       "Student",
				LastName:        fmt.Sprintf("%s %d", def.code, i),
				Email:           fmt.Sprintf("student%d.%s@orbit.edu", i, def.code),
				Phone:           fmt.Sprintf("97%08d", d*100+i),
				Year:            1,
				Semester:        1,
				DateOfAdmission: "2024-08-01",
				Address:         model.Address{City: "Bengaluru", State: "Karnataka"},
			}
			report("student "+req.StudentID, ignoreConflict(studentService.Create(ctx, dept.ID, req)))
		}

		// Each subject requires the one before it.
		var prev []uuid.UUID
		for i, name := range def.subjects {
			code := fmt.Sprintf("%s%d01", def.code, i+1)
			sub, err := subjectService.Create(ctx, dept.ID, model.SubjectRequest{
				Name:          name,
				Code:          code,
				Credits:       4,
				Semester:      i + 1,
				Year:          i/2 + 1,
				Prerequisites: prev,
				FacultyID:     facultyID,
			})
			if service.KindOf(err) == service.KindConflict {
				sub, err = subjectRepo.GetByCode(ctx, dept.ID, code)
			}
			report("subject "+code, err)
			if err == nil {
				prev = []uuid.UUID{sub.ID}
			}
		}
	}

	fmt.Println("\nSeed completed.")
}

func ignoreConflict[T any](_ T, err error) error {
	if service.KindOf(err) == service.KindConflict {
		return nil
	}
	return err
}

func report(what string, err error) {
	if err != nil {
		fmt.Printf("  %s: %v\n", what, err)
	}
}
