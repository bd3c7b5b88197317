// Command seed populates a Rota database with sample participants, tasks,
// and completion history for local development.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mfenwick/rota/internal/database"
	"github.com/mfenwick/rota/internal/model"
	"github.com/mfenwick/rota/internal/store"
)

func main() {
	godotenv.Load()

	dbPath := os.Getenv("ROTA_DB_PATH")
	if dbPath == "" {
		dbPath = "rota.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	participants := store.NewParticipantStore(db)
	tasks := store.NewTaskStore(db)

	var ids []string
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		p, err := participants.Create(name, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create participant %s: %v\n", name, err)
			os.Exit(1)
		}
		ids = append(ids, p.ID)
		fmt.Printf("participant %-6s %s\n", p.Name, p.ID)
	}

	chores := []struct {
		name string
		desc string
		freq int
	}{
		{"Vacuum", "Living room and hallway", 7},
		{"Take out trash", "Bins go out Sunday night", 3},
		{"Clean bathroom", "", 14},
	}
	for _, c := range chores {
		t, err := tasks.Create(model.KindChore, c.name, c.desc, c.freq, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create chore %s: %v\n", c.name, err)
			os.Exit(1)
		}
		fmt.Printf("chore    %-16s due %s\n", t.Name, t.NextDueDate.Format("2006-01-02"))
	}

	items := []struct {
		name string
		freq int
	}{
		{"Toilet paper", 21},
		{"Dish soap", 30},
		{"Milk", 4},
	}
	for _, it := range items {
		t, err := tasks.Create(model.KindPurchase, it.name, "", it.freq, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create item %s: %v\n", it.name, err)
			os.Exit(1)
		}
		fmt.Printf("purchase %-16s due %s\n", t.Name, t.NextDueDate.Format("2006-01-02"))
	}

	// A little history: one on-time completion and one backdated purchase.
	all, err := tasks.List("", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list tasks: %v\n", err)
		os.Exit(1)
	}
	for _, t := range all {
		switch t.Kind {
		case model.KindChore:
			if _, err := tasks.Complete(t.ID, ids[0], nil, store.CompletionMeta{
				DurationMinutes: 25,
				Comments:        "seeded",
			}); err != nil {
				fmt.Fprintf(os.Stderr, "complete %s: %v\n", t.Name, err)
				os.Exit(1)
			}
		case model.KindPurchase:
			lastWeek := time.Now().UTC().AddDate(0, 0, -7)
			if _, err := tasks.Complete(t.ID, ids[1], &lastWeek, store.CompletionMeta{
				Quantity:        2,
				TotalPriceCents: 899,
				Comments:        "seeded",
			}); err != nil {
				fmt.Fprintf(os.Stderr, "log purchase %s: %v\n", t.Name, err)
				os.Exit(1)
			}
		}
	}

	fmt.Println("seed complete")
}
