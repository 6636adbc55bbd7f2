package dinacharya

import (
	"testing"

	"github.com/ayushlabs/ayush-backend/internal/prakriti"
)

func TestRitualsFor_SevenTasksPerDosha(t *testing.T) {
	c := NewCatalog()
	for _, dosha := range c.Doshas() {
		tasks := c.RitualsFor(dosha)
		if len(tasks) != TasksPerWeek {
			t.Fatalf("expected %d tasks for %s got %d", TasksPerWeek, dosha, len(tasks))
		}
		for _, task := range tasks {
			if task.Done {
				t.Fatalf("task %s for %s should start not-done", task.ID, dosha)
			}
			if task.CompletedAt != "" {
				t.Fatalf("task %s for %s should start with empty completed_at", task.ID, dosha)
			}
			if task.TaskEN == "" || task.TaskKN == "" {
				t.Fatalf("task %s for %s missing bilingual labels", task.ID, dosha)
			}
		}
	}
}

func TestRitualsFor_ReturnsCopies(t *testing.T) {
	c := NewCatalog()
	first := c.RitualsFor(prakriti.DoshaPitta)
	first[0].Done = true
	first[0].CompletedAt = "02 Jan, 03:04 PM"

	second := c.RitualsFor(prakriti.DoshaPitta)
	if second[0].Done || second[0].CompletedAt != "" {
		t.Fatalf("mutating a returned plan leaked into the catalog")
	}
}

func TestRitualsFor_UnknownDoshaFallsBackToVata(t *testing.T) {
	c := NewCatalog()
	fallback := c.RitualsFor("Balanced")
	vata := c.RitualsFor(prakriti.DoshaVata)
	if len(fallback) != len(vata) {
		t.Fatalf("expected fallback plan length %d got %d", len(vata), len(fallback))
	}
	for i := range vata {
		if fallback[i].ID != vata[i].ID {
			t.Fatalf("expected fallback task %q got %q", vata[i].ID, fallback[i].ID)
		}
	}
}

func TestRitualsFor_UniqueTaskIDs(t *testing.T) {
	c := NewCatalog()
	seen := map[string]bool{}
	for _, dosha := range c.Doshas() {
		for _, task := range c.RitualsFor(dosha) {
			if seen[task.ID] {
				t.Fatalf("duplicate task id %q", task.ID)
			}
			seen[task.ID] = true
		}
	}
}
