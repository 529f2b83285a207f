// Package repotest provides in-memory implementations of the repository
// interfaces. Unique constraints are enforced under a single lock so the
// fakes fail the same way PostgreSQL does when two writers race.
package repotest

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/repository"
	"github.com/google/uuid"
)

// Store is a shared in-memory database. Entity views returned by its
// accessors see each other's rows, so populated references resolve the
// same way the SQL joins do.
type Store struct {
	mu  sync.Mutex
	seq int

	order       map[uuid.UUID]int
	colleges    map[uuid.UUID]model.College
	departments map[uuid.UUID]model.Department
	programs    map[uuid.UUID]model.Program
	faculties   map[uuid.UUID]model.Faculty
	students    map[uuid.UUID]model.Student
	subjects    map[uuid.UUID]model.Subject
	users       map[uuid.UUID]model.User

	revoked    map[string]time.Time
	statsCache map[uuid.UUID]model.CollegeStats
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		order:       make(map[uuid.UUID]int),
		colleges:    make(map[uuid.UUID]model.College),
		departments: make(map[uuid.UUID]model.Department),
		programs:    make(map[uuid.UUID]model.Program),
		faculties:   make(map[uuid.UUID]model.Faculty),
		students:    make(map[uuid.UUID]model.Student),
		subjects:    make(map[uuid.UUID]model.Subject),
		users:       make(map[uuid.UUID]model.User),
		revoked:     make(map[string]time.Time),
		statsCache:  make(map[uuid.UUID]model.CollegeStats),
	}
}

func (s *Store) Colleges() repository.CollegeRepository { return &collegeRepo{s} }
func (s *Store) Departments() repository.DepartmentRepository { return &departmentRepo{s} }
func (s *Store) Programs() repository.ProgramRepository { return &programRepo{s} }
func (s *Store) Faculties() repository.FacultyRepository { return &facultyRepo{s} }
func (s *Store) Students() repository.StudentRepository { return &studentRepo{s} }
func (s *Store) Subjects() repository.SubjectRepository { return &subjectRepo{s} }
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }
func (s *Store) Stats() repository.StatsRepository { return &statsRepo{s} }
func (s *Store) StatsCache() repository.StatsCache { return &statsCache{s} }
func (s *Store) Tokens() repository.TokenStore { return &tokenStore{s} }

// newID assigns a fresh id and remembers insertion order. Callers hold mu.
func (s *Store) newID() uuid.UUID {
	id := uuid.New()
	s.seq++
	s.order[id] = s.seq
	return id
}

func (s *Store) collegeRef(id uuid.UUID) *model.CollegeRef {
	c, ok := s.colleges[id]
	if !ok {
		return nil
	}
	return c.Ref()
}

func (s *Store) departmentRef(id uuid.UUID) *model.DepartmentRef {
	d, ok := s.departments[id]
	if !ok {
		return nil
	}
	return &model.DepartmentRef{ID: d.ID, Name: d.Name, Code: d.Code}
}

// newestFirst sorts like ORDER BY created_at DESC, breaking ties by insertion.
func newestFirst[T any](s *Store, items []T, key func(T) (time.Time, uuid.UUID)) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return s.order[idi] > s.order[idj]
	})
}

// matches is the ILIKE '%search%' filter over any of the fields.
func matches(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func duplicate(constraint string) error {
	return &repository.DuplicateKeyError{Constraint: constraint}
}
