// Package roster ties storage to the assignment generator. It owns the
// load, generate, persist sequence and the storage failure policy: reads that
// fail are logged and treated as empty, writes that fail are logged and
// reported to the caller without discarding the generated roster.
package roster

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dukerupert/chorewheel/internal/assignment"
	"github.com/dukerupert/chorewheel/internal/calendar"
	"github.com/dukerupert/chorewheel/internal/model"
)

var (
	ErrStorageRead   = errors.New("storage read failure")
	ErrStorageWrite  = errors.New("storage write failure")
	ErrNameRequired  = errors.New("name is required")
	ErrDuplicateName = errors.New("a family member with that name already exists")
	ErrNotFound      = errors.New("not found")
	ErrNoMembers     = errors.New("no family members")
	ErrInvalidDate   = errors.New("invalid date")
)

type MemberStore interface {
	Create(name string) (*model.FamilyMember, error)
	List() ([]model.FamilyMember, error)
	GetByID(id string) (*model.FamilyMember, error)
	Delete(id string) error
	NameExists(name string, excludeID string) (bool, error)
}

type ChoreStore interface {
	Create(name, description string) (*model.Chore, error)
	List() ([]model.Chore, error)
	GetByID(id string) (*model.Chore, error)
	Update(id, name, description string) (*model.Chore, error)
	Delete(id string) error
}

type AssignmentStore interface {
	List() ([]model.DailyAssignments, error)
	GetByDate(date string) (*model.DailyAssignments, error)
	Replace(daily model.DailyAssignments) error
	ReplaceAll(history []model.DailyAssignments) error
	Delete(date string) error
}

// Notifier is told about every change. The websocket hub implements it.
type Notifier interface {
	Notify(entity, action, id string)
}

type Service struct {
	members     MemberStore
	chores      ChoreStore
	assignments AssignmentStore
	generator   *assignment.Generator
	notifier    Notifier
	logger      *slog.Logger
	now         func() time.Time

	// mu serializes generate-and-persist; the generator's random source is
	// not safe for concurrent use.
	mu sync.Mutex
}

func New(ms MemberStore, cs ChoreStore, as AssignmentStore, gen *assignment.Generator, logger *slog.Logger) *Service {
	if gen == nil {
		gen = assignment.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		members:     ms,
		chores:      cs,
		assignments: as,
		generator:   gen,
		logger:      logger,
		now:         time.Now,
	}
}

// SetNotifier registers n to receive change notifications. nil disables them.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// SetClock replaces the clock used by Today.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) notify(entity, action, id string) {
	if s.notifier != nil {
		s.notifier.Notify(entity, action, id)
	}
}

func (s *Service) readFailed(what string, err error) {
	s.logger.Error("load "+what, "error", fmt.Errorf("%w: %w", ErrStorageRead, err))
}

func (s *Service) writeFailed(what string, err error) error {
	err = fmt.Errorf("%w: %s: %w", ErrStorageWrite, what, err)
	s.logger.Error("save "+what, "error", err)
	return err
}

func validDate(date string) error {
	if _, err := calendar.Parse(date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

// --- Members ---

// ListMembers returns all members. A read failure yields an empty list.
func (s *Service) ListMembers() []model.FamilyMember {
	members, err := s.members.List()
	if err != nil {
		s.readFailed("family members", err)
		return []model.FamilyMember{}
	}
	if members == nil {
		members = []model.FamilyMember{}
	}
	return members
}

func (s *Service) AddMember(name string) (*model.FamilyMember, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	exists, err := s.members.NameExists(name, "")
	if err != nil {
		s.readFailed("family member names", err)
	} else if exists {
		return nil, ErrDuplicateName
	}

	m, err := s.members.Create(name)
	if err != nil {
		return nil, s.writeFailed("family member", err)
	}
	s.logger.Info("family member added", "id", m.ID, "name", m.Name)
	s.notify("family_member", "created", m.ID)
	return m, nil
}

// RemoveMember deletes a member. Past rosters keep the member's name.
func (s *Service) RemoveMember(id string) error {
	m, err := s.members.GetByID(id)
	if err != nil {
		s.readFailed("family member", err)
	} else if m == nil {
		return fmt.Errorf("family member %s: %w", id, ErrNotFound)
	}

	if err := s.members.Delete(id); err != nil {
		return s.writeFailed("family member", err)
	}
	s.logger.Info("family member removed", "id", id)
	s.notify("family_member", "deleted", id)
	return nil
}

// --- Chores ---

// ListChores returns all chores. A read failure yields an empty list.
func (s *Service) ListChores() []model.Chore {
	chores, err := s.chores.List()
	if err != nil {
		s.readFailed("chores", err)
		return []model.Chore{}
	}
	if chores == nil {
		chores = []model.Chore{}
	}
	return chores
}

func (s *Service) AddChore(name, description string) (*model.Chore, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	c, err := s.chores.Create(name, strings.TrimSpace(description))
	if err != nil {
		return nil, s.writeFailed("chore", err)
	}
	s.logger.Info("chore added", "id", c.ID, "name", c.Name)
	s.notify("chore", "created", c.ID)
	return c, nil
}

// EditChore replaces a chore's name and description in place.
func (s *Service) EditChore(id, name, description string) (*model.Chore, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	c, err := s.chores.Update(id, name, strings.TrimSpace(description))
	if err != nil {
		return nil, s.writeFailed("chore", err)
	}
	if c == nil {
		return nil, fmt.Errorf("chore %s: %w", id, ErrNotFound)
	}
	s.logger.Info("chore updated", "id", c.ID, "name", c.Name)
	s.notify("chore", "updated", c.ID)
	return c, nil
}

func (s *Service) RemoveChore(id string) error {
	c, err := s.chores.GetByID(id)
	if err != nil {
		s.readFailed("chore", err)
	} else if c == nil {
		return fmt.Errorf("chore %s: %w", id, ErrNotFound)
	}

	if err := s.chores.Delete(id); err != nil {
		return s.writeFailed("chore", err)
	}
	s.logger.Info("chore removed", "id", id)
	s.notify("chore", "deleted", id)
	return nil
}
