package assignment

import (
	"math/rand/v2"

	"github.com/dukerupert/chorewheel/internal/model"
)

// Generator builds daily rosters. It holds no state besides its random source,
// so a seeded Generator produces the same roster for the same inputs.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator drawing from src.
func New(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// NewSeeded returns a Generator with a fixed PCG seed.
func NewSeeded(seed uint64) *Generator {
	return New(rand.NewPCG(seed, seed))
}

// Default returns a Generator seeded from the runtime's random source.
func Default() *Generator {
	return New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// DayOffCount returns the minimum number of day-off slots for a household of
// n members: max(1, ceil(n * 0.3)).
func DayOffCount(n int) int {
	return max(1, (3*n+9)/10)
}

// Generate pairs every member with a chore or a day off for date.
//
// Members and the slot pool are shuffled independently and matched by index.
// When chores plus day-off slots cover every member, no chore repeats. When
// they do not, the pool is topped up with chores drawn with replacement from
// the full chore list, or with extra days off if there are no chores at all.
func (g *Generator) Generate(members []model.FamilyMember, chores []model.Chore, date string) model.DailyAssignments {
	if len(members) == 0 {
		return model.DailyAssignments{Date: date, Assignments: []model.Assignment{}}
	}

	shuffled := append([]model.FamilyMember(nil), members...)
	Shuffle(g.rng, shuffled)

	pool := g.buildPool(chores, len(members))

	assignments := make([]model.Assignment, len(shuffled))
	for i, m := range shuffled {
		a := model.Assignment{
			ID:               date + "-" + m.ID,
			FamilyMemberID:   m.ID,
			FamilyMemberName: m.Name,
			Date:             date,
			IsDayOff:         pool[i] == nil,
		}
		if c := pool[i]; c != nil {
			id, name := c.ID, c.Name
			a.ChoreID = &id
			a.ChoreName = &name
		}
		assignments[i] = a
	}

	return model.DailyAssignments{Date: date, Assignments: assignments}
}

// buildPool returns exactly total slots. A nil slot is a day off.
func (g *Generator) buildPool(chores []model.Chore, total int) []*model.Chore {
	dayOffs := DayOffCount(total)

	pool := make([]*model.Chore, 0, max(total, len(chores)+dayOffs))
	for i := range chores {
		pool = append(pool, &chores[i])
	}
	for range dayOffs {
		pool = append(pool, nil)
	}
	Shuffle(g.rng, pool)

	if len(pool) >= total {
		return truncate(pool, total, dayOffs)
	}

	for len(pool) < total {
		if len(chores) == 0 {
			pool = append(pool, nil)
			continue
		}
		pool = append(pool, &chores[g.rng.IntN(len(chores))])
	}
	Shuffle(g.rng, pool)
	return pool
}

// truncate keeps every day-off slot and the first total-dayOffs chores of an
// already shuffled pool, preserving their order.
func truncate(pool []*model.Chore, total, dayOffs int) []*model.Chore {
	choreBudget := total - dayOffs
	out := make([]*model.Chore, 0, total)
	for _, c := range pool {
		if c == nil {
			out = append(out, nil)
			continue
		}
		if choreBudget > 0 {
			out = append(out, c)
			choreBudget--
		}
	}
	return out
}

// Shuffle permutes s in place with a Fisher-Yates pass from the last index
// down to the second.
func Shuffle[T any](rng *rand.Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
