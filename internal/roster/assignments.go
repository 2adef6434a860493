package roster

import (
	"fmt"

	"github.com/dukerupert/chorewheel/internal/calendar"
	"github.com/dukerupert/chorewheel/internal/model"
)

// TodayDate returns today's calendar date by the service clock.
func (s *Service) TodayDate() string {
	return calendar.Today(s.now())
}

// Generate builds a new roster for date from the current members and chores
// and stores it in place of any earlier roster for that date.
//
// On a write failure the roster is still returned along with an error
// wrapping ErrStorageWrite.
func (s *Service) Generate(date string) (model.DailyAssignments, error) {
	if err := validDate(date); err != nil {
		return model.DailyAssignments{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	members := s.ListMembers()
	if len(members) == 0 {
		return model.DailyAssignments{}, ErrNoMembers
	}
	chores := s.ListChores()
	if len(chores) == 0 {
		s.logger.Warn("no chores defined, everyone gets a day off", "date", date)
	}

	daily := s.generator.Generate(members, chores, date)

	if err := s.assignments.Replace(daily); err != nil {
		return daily, s.writeFailed("assignments for "+date, err)
	}

	s.logger.Info("assignments generated",
		"date", date,
		"members", len(members),
		"chores", len(chores),
		"day_offs", daily.DayOffCount(),
	)
	s.notify("assignments", "generated", date)
	return daily, nil
}

// ForDate returns the stored roster for date, or nil if there is none.
// A read failure is logged and reported as no roster.
func (s *Service) ForDate(date string) (*model.DailyAssignments, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	daily, err := s.assignments.GetByDate(date)
	if err != nil {
		s.readFailed("assignments for "+date, err)
		return nil, nil
	}
	return daily, nil
}

// Today returns today's roster, or nil if it has not been generated.
func (s *Service) Today() *model.DailyAssignments {
	daily, _ := s.ForDate(s.TodayDate())
	return daily
}

// History returns every stored roster, newest first. A read failure yields
// an empty history.
func (s *Service) History() []model.DailyAssignments {
	history, err := s.assignments.List()
	if err != nil {
		s.readFailed("assignment history", err)
		return []model.DailyAssignments{}
	}
	if history == nil {
		history = []model.DailyAssignments{}
	}
	return history
}

// ClearDate removes the roster for date.
func (s *Service) ClearDate(date string) error {
	if err := validDate(date); err != nil {
		return err
	}
	if err := s.assignments.Delete(date); err != nil {
		return s.writeFailed("assignments for "+date, err)
	}
	s.logger.Info("assignments cleared", "date", date)
	s.notify("assignments", "deleted", date)
	return nil
}

// Import replaces the whole history after checking every roster is well formed.
func (s *Service) Import(history []model.DailyAssignments) error {
	if err := ValidateHistory(history); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.assignments.ReplaceAll(history); err != nil {
		return s.writeFailed("assignment history", err)
	}
	s.logger.Info("assignment history imported", "days", len(history))
	s.notify("assignments", "imported", "")
	return nil
}

// ValidateHistory checks dates are valid and unique and that each assignment
// agrees with its roster and with itself about being a day off.
func ValidateHistory(history []model.DailyAssignments) error {
	seen := make(map[string]bool, len(history))
	for _, daily := range history {
		if err := validDate(daily.Date); err != nil {
			return err
		}
		if seen[daily.Date] {
			return fmt.Errorf("duplicate roster for %s", daily.Date)
		}
		seen[daily.Date] = true

		ids := make(map[string]bool, len(daily.Assignments))
		for _, a := range daily.Assignments {
			if a.Date != daily.Date {
				return fmt.Errorf("assignment %s: date %q does not match roster %s", a.ID, a.Date, daily.Date)
			}
			if ids[a.ID] {
				return fmt.Errorf("roster %s: duplicate assignment id %s", daily.Date, a.ID)
			}
			ids[a.ID] = true
			if (a.ChoreID == nil) != (a.ChoreName == nil) || a.IsDayOff != (a.ChoreID == nil) {
				return fmt.Errorf("assignment %s: inconsistent day off", a.ID)
			}
		}
	}
	return nil
}
