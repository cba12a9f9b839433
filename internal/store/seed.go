package store

import (
	"strconv"
	"time"

	"github.com/dukerupert/familyflow/internal/model"
)

// Seed is the initial content of a Store.
type Seed struct {
	Users        []model.User
	Chores       []model.Chore
	BonusTasks   []model.BonusTask
	Reservations []model.TaskReservation
}

// DemoSeed returns the demo household: one parent, two children, their chores
// for the month containing now, ten bonus tasks and four reservations.
func DemoSeed(now time.Time) Seed {
	next := 0
	nextID := func() string {
		next++
		return strconv.Itoa(next)
	}

	month, year := int(now.Month()), now.Year()
	day := func(d int) *time.Time {
		t := time.Date(year, now.Month(), d, 0, 0, 0, 0, now.Location())
		return &t
	}

	alex := model.User{ID: nextID(), Username: "parent.alex", DisplayName: "Alex (Parent)", Role: model.RoleParent}
	sam := model.User{ID: nextID(), Username: "child.sam", DisplayName: "Sam", Role: model.RoleChild, MonthlyAllowance: 20}
	riley := model.User{ID: nextID(), Username: "child.riley", DisplayName: "Riley", Role: model.RoleChild, MonthlyAllowance: 25}

	chore := func(child model.User, title, desc string, completedOn int) model.Chore {
		c := model.Chore{ID: nextID(), ChildID: child.ID, Title: title, Description: desc, Month: month, Year: year}
		if completedOn > 0 {
			c.IsCompleted = true
			c.CompletedAt = day(completedOn)
		}
		return c
	}
	chores := []model.Chore{
		chore(sam, "Make bed", "Tidy up and make the bed each morning", 0),
		chore(sam, "Feed the cat", "Morning and evening feeding", 2),
		chore(sam, "Set the table", "Set the table for dinner each evening", 0),
		chore(sam, "Put away toys", "Clean up toys and games after playing", 5),
		chore(sam, "Water the plants", "Water the indoor plants twice a week", 0),
		chore(riley, "Take out trash", "Take out the trash and recycling on Tuesdays and Fridays", 0),
		chore(riley, "Walk the dog", "Take the dog for a 15-minute walk after school", 3),
		chore(riley, "Empty dishwasher", "Empty the dishwasher and put dishes away", 0),
		chore(riley, "Clean bathroom", "Clean the bathroom sink and mirror weekly", 1),
		chore(riley, "Fold laundry", "Fold and put away clean clothes", 0),
	}

	task := func(title, desc string, reward float64, available bool) model.BonusTask {
		return model.BonusTask{ID: nextID(), CreatedBy: alex.ID, Title: title, Description: desc, RewardAmount: reward, IsAvailable: available}
	}
	tasks := []model.BonusTask{
		task("Wash the car", "Exterior wash and dry", 5, false),
		task("Organize bookshelf", "Sort books by category and alphabetically", 3, false),
		task("Vacuum living room", "Vacuum the entire living room including under furniture", 2, false),
		task("Clean windows", "Clean all windows inside and out", 8, false),
		task("Garden weeding", "Pull weeds from the front garden bed", 4, true),
		task("Deep clean kitchen", "Clean all appliances, counters, and cabinets", 6, true),
		task("Organize garage", "Sort tools and organize storage boxes", 7, true),
		task("Paint bedroom wall", "Touch up paint on bedroom wall", 10, true),
		task("Help with grocery shopping", "Help carry groceries and put them away", 2, true),
		task("Clean out car", "Remove trash and vacuum car interior", 3, true),
	}

	reservation := func(t model.BonusTask, child model.User, reservedOn, completedOn int) model.TaskReservation {
		r := model.TaskReservation{
			ID:         model.ReservationID(t.ID, child.ID),
			TaskID:     t.ID,
			ChildID:    child.ID,
			ReservedAt: *day(reservedOn),
		}
		if completedOn > 0 {
			r.IsCompleted = true
			r.CompletedAt = day(completedOn)
		}
		return r
	}
	reservations := []model.TaskReservation{
		reservation(tasks[0], sam, 3, 4),
		reservation(tasks[1], riley, 5, 6),
		reservation(tasks[2], sam, 7, 8),
		reservation(tasks[3], riley, 9, 0),
	}

	return Seed{
		Users:        []model.User{alex, sam, riley},
		Chores:       chores,
		BonusTasks:   tasks,
		Reservations: reservations,
	}
}
