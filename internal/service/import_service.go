package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/cpc-orbit/orbit-backend/internal/config"
	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/repository"
	govalidator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Sentinel errors for bulk uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrMissingColumns      = errors.New("file must have a header row with name and email columns")
	ErrUnsupportedRole     = errors.New("bulk import role must be student or faculty")
	ErrUnreadableFile      = errors.New("file could not be parsed")
)

// userCodeAttempts bounds how often a colliding generated code is redrawn.
const userCodeAttempts = 3

var userCodePrefix = map[model.Role]string{
	model.RoleStudent: "STU",
	model.RoleFaculty: "FAC",
}

// ImportService creates login accounts in bulk from spreadsheet uploads.
type ImportService struct {
	clock
	cfg      *config.Config
	auth     *AuthService
	userRepo repository.UserRepository
	validate *govalidator.Validate
	log      zerolog.Logger
}

// NewImportService creates a new ImportService.
func NewImportService(
	cfg *config.Config,
	auth *AuthService,
	userRepo repository.UserRepository,
	log zerolog.Logger,
) *ImportService {
	return &ImportService{
		cfg:      cfg,
		auth:     auth,
		userRepo: userRepo,
		validate: govalidator.New(),
		log:      log.With().Str("component", "import_service").Logger(),
	}
}

// ImportUsers reads an .xlsx or .csv file and creates one account per data row.
// Row failures are collected and never stop the batch. The returned error is
// only set when the file as a whole is unusable.
func (s *ImportService) ImportUsers(ctx context.Context, filename string, size int64, r io.Reader, role model.Role) (*model.BulkImportResult, error) {
	prefix, ok := userCodePrefix[role]
	if !ok {
		return nil, ErrUnsupportedRole
	}
	if size > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, size, s.cfg.MaxUploadBytes)
	}

	rows, err := readRows(filename, r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrMissingColumns
	}
	cols := headerIndex(rows[0])
	if _, ok := cols["name"]; !ok {
		return nil, ErrMissingColumns
	}
	if _, ok := cols["email"]; !ok {
		return nil, ErrMissingColumns
	}

	// One hash for the whole batch; every imported account starts with the same password.
	hash, err := s.auth.HashPassword(s.cfg.BulkDefaultPassword)
	if err != nil {
		return nil, fmt.Errorf("hash default password: %w", err)
	}

	result := &model.BulkImportResult{Errors: []model.BulkImportRowError{}}
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blank(row) {
			continue
		}
		result.Total++

		get := func(col string) string {
			if idx, ok := cols[col]; ok && idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		email := normalizeEmail(get("email"))
		if err := s.importRow(ctx, get, email, hash, role, prefix); err != nil {
			result.Errors = append(result.Errors, model.BulkImportRowError{Row: rowNum, Email: email, Error: err.Error()})
			continue
		}
		result.Count++
	}

	s.log.Info().
		Str("role", string(role)).
		Int("total", result.Total).
		Int("created", result.Count).
		Int("failed", len(result.Errors)).
		Msg("Bulk import finished")
	return result, nil
}

func (s *ImportService) importRow(ctx context.Context, get func(string) string, email, hash string, role model.Role, prefix string) error {
	name := get("name")
	if name == "" {
		return errors.New("name is required")
	}
	if email == "" {
		return errors.New("email is required")
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return errors.New("email is not a valid email address")
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if hit, err := found(err); err != nil {
		return err
	} else if hit {
		return errors.New(msgEmailTaken)
	}

	now := s.timestamp()
	u := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch role {
	case model.RoleStudent:
		u.StudentDetails = &model.StudentDetails{
			Phone:    get("phone"),
			College:  get("college"),
			Program:  get("program"),
			Branch:   get("branch"),
			Semester: get("semester"),
		}
	case model.RoleFaculty:
		u.FacultyDetails = &model.FacultyDetails{
			Phone:         get("phone"),
			IsCoordinator: truthy(get("is_coordinator")),
		}
	}

	for attempt := 0; attempt < userCodeAttempts; attempt++ {
		code := fmt.Sprintf("%s%06d", prefix, rand.IntN(1_000_000))
		taken, err := s.userRepo.UserCodeExists(ctx, code)
		if err != nil {
			return err
		}
		if taken {
			continue
		}

		u.UserCode = &code
		err = s.userRepo.Create(ctx, u)
		switch {
		case err == nil:
			return nil
		case repository.IsDuplicate(err, repository.ConstraintUserCode):
			continue
		case repository.IsDuplicate(err, repository.ConstraintUserEmail):
			return errors.New(msgEmailTaken)
		default:
			return err
		}
	}
	return errors.New("could not allocate a unique user code")
}

// readRows returns every row of the first sheet (xlsx) or of the file (csv).
func readRows(filename string, r io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: open workbook: %v", ErrUnreadableFile, err)
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("%w: read sheet: %v", ErrUnreadableFile, err)
		}
		return rows, nil
	case ".csv":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		cr := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
		cr.FieldsPerRecord = -1
		cr.TrimLeadingSpace = true
		rows, err := cr.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("%w: parse csv: %v", ErrUnreadableFile, err)
		}
		return rows, nil
	}
	return nil, fmt.Errorf("%w: %s (allowed: .xlsx, .csv)", ErrUnsupportedFileType, filepath.Ext(filename))
}

// headerIndex maps normalized column names to their position.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
		if _, dup := cols[key]; !dup && key != "" {
			cols[key] = i
		}
	}
	return cols
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
