package progress

import "time"

// HistoryTotals are the cumulative counters milestone predicates run against.
type HistoryTotals struct {
	// CompletedDays counts days with IsWorkoutComplete set.
	CompletedDays int
	// CompletedExercises counts exercises across the whole history.
	CompletedExercises int
}

// SummarizeHistory folds a progress history into the cumulative totals.
func SummarizeHistory(history []Day) HistoryTotals {
	var totals HistoryTotals
	for _, d := range history {
		if d.IsWorkoutComplete {
			totals.CompletedDays++
		}
		totals.CompletedExercises += d.CompletedExercises()
	}
	return totals
}

// milestoneDef pairs an id with a pure predicate over the cumulative totals.
type milestoneDef struct {
	id          string
	title       string
	description string
	reached     func(HistoryTotals) bool
}

// milestoneDefs is evaluated strictly in this order. At most one milestone
// surfaces per evaluation pass: the first unawarded definition whose
// predicate holds wins and scanning stops, even if several thresholds were
// crossed at once. Spreading simultaneous achievements over later passes is
// intentional throttling, not a scanning bug.
var milestoneDefs = []milestoneDef{
	{
		id:          "first-exercise",
		title:       "First Move",
		description: "Completed your very first exercise.",
		reached:     func(t HistoryTotals) bool { return t.CompletedExercises >= 1 },
	},
	{
		id:          "first-workout",
		title:       "Day One Done",
		description: "Finished a full workout for the first time.",
		reached:     func(t HistoryTotals) bool { return t.CompletedDays >= 1 },
	},
	{
		id:          "seven-days",
		title:       "One Week Strong",
		description: "Completed workouts on seven days.",
		reached:     func(t HistoryTotals) bool { return t.CompletedDays >= 7 },
	},
	{
		id:          "thirty-days",
		title:       "Habit Formed",
		description: "Completed workouts on thirty days.",
		reached:     func(t HistoryTotals) bool { return t.CompletedDays >= 30 },
	},
	{
		id:          "fifty-exercises",
		title:       "Fifty Reps Deep",
		description: "Completed fifty exercises in total.",
		reached:     func(t HistoryTotals) bool { return t.CompletedExercises >= 50 },
	},
	{
		id:          "hundred-exercises",
		title:       "Century Club",
		description: "Completed one hundred exercises in total.",
		reached:     func(t HistoryTotals) bool { return t.CompletedExercises >= 100 },
	},
	{
		id:          "big-two-fifty",
		title:       "Two Hundred Fifty",
		description: "Completed two hundred and fifty exercises in total.",
		reached:     func(t HistoryTotals) bool { return t.CompletedExercises >= 250 },
	},
}

// EvaluateMilestones returns the next newly earned milestone, or nil when no
// unawarded definition holds. Awarding is idempotent: ids in awarded never
// surface again.
func EvaluateMilestones(totals HistoryTotals, awarded map[string]bool, dayNumber int, now time.Time) *Milestone {
	for _, def := range milestoneDefs {
		if awarded[def.id] {
			continue
		}
		if !def.reached(totals) {
			continue
		}
		return &Milestone{
			ID:          def.id,
			Title:       def.title,
			Description: def.description,
			DayNumber:   dayNumber,
			AchievedAt:  now,
		}
	}
	return nil
}
