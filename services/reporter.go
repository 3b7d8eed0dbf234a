package services

import (
	"fmt"
	"strings"
	"time"

	"eventim-monitor/models"
	"eventim-monitor/utils"
)

// Change records a per-category count delta between two snapshots.
type Change struct {
	Category models.Category
	Delta    int
}

// Message renders the operator-facing notification for this change.
// For availability categories a drop means tickets were sold; for the sold
// category the directions invert — a rising sold count is a sale event.
func (c Change) Message() string {
	if c.Category == models.Sold {
		if c.Delta > 0 {
			return fmt.Sprintf("🎟️  %d new tickets sold since last check", c.Delta)
		}
		return fmt.Sprintf("🟢 %d seats returned to sale", -c.Delta)
	}

	if c.Delta > 0 {
		return fmt.Sprintf("🟢 More %s seats available (+%d)", c.Category.Label(), c.Delta)
	}
	return fmt.Sprintf("🎟️  Tickets sold since last check in %s (%d)", c.Category.Label(), c.Delta)
}

// Diff compares two snapshots and returns one Change per category whose
// count differs, in models.Categories order. Equal snapshots yield nil.
func Diff(current, previous models.Snapshot) []Change {
	var changes []Change
	for _, cat := range models.Categories {
		if delta := current.Count(cat) - previous.Count(cat); delta != 0 {
			changes = append(changes, Change{Category: cat, Delta: delta})
		}
	}
	return changes
}

// Reporter prints human-readable seat availability reports to the console.
type Reporter struct {
	logger *utils.Logger
}

// NewReporter creates a Reporter with the given logger.
func NewReporter(logger *utils.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// PrintSummary prints the formatted seat availability report for a snapshot.
func (r *Reporter) PrintSummary(snap models.Snapshot) {
	sep := strings.Repeat("═", 50)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🎭 EVENTIM SEAT AVAILABILITY REPORT\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("  🟡 %-22s : \033[1m%d\033[0m\n", models.AvailableStandard.Label(), snap.AvailableStandard)
	fmt.Printf("  🔴 %-22s : \033[1m%d\033[0m\n", models.AvailablePremium.Label(), snap.AvailablePremium)
	fmt.Printf("  ⚫ %-22s : \033[1m%d\033[0m\n", models.Sold.Label(), snap.Sold)
	fmt.Printf("  📅 Check time             : %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Printf("\033[1;35m%s\033[0m\n", sep)

	r.logger.Info("[reporter] Current counts — standard: %d, premium: %d, sold: %d",
		snap.AvailableStandard, snap.AvailablePremium, snap.Sold)
}

// Notify prints one message per change; an empty change set yields a single
// "no changes" message.
func (r *Reporter) Notify(changes []Change) {
	if len(changes) == 0 {
		fmt.Println("📊 No changes detected since last check")
		return
	}

	for _, c := range changes {
		fmt.Println(c.Message())
	}
}
