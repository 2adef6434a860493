package model

// Assignment links one family member to a chore, or to a day off, for a
// single calendar date. Member and chore names are copied at generation time
// so the record stays readable after renames or deletions.
type Assignment struct {
	ID               string  `json:"id"`
	FamilyMemberID   string  `json:"familyMemberId"`
	FamilyMemberName string  `json:"familyMemberName"`
	ChoreID          *string `json:"choreId"`
	ChoreName        *string `json:"choreName"`
	Date             string  `json:"date"`
	IsDayOff         bool    `json:"isDayOff"`
}

// DailyAssignments is the roster for one date. History holds at most one per date.
type DailyAssignments struct {
	Date        string       `json:"date"`
	Assignments []Assignment `json:"assignments"`
}

// DayOffCount returns how many assignments in the roster are days off.
func (d DailyAssignments) DayOffCount() int {
	n := 0
	for _, a := range d.Assignments {
		if a.IsDayOff {
			n++
		}
	}
	return n
}
