package services

import (
	"context"
	"testing"

	"github.com/ayushlabs/ayush-backend/internal/knowledge"
	"github.com/ayushlabs/ayush-backend/internal/logger"
	"github.com/ayushlabs/ayush-backend/internal/prakriti"
	"github.com/ayushlabs/ayush-backend/internal/types"
)

func dietBase() *knowledge.Base {
	return &knowledge.Base{
		Graph: &knowledge.Graph{},
		Foods: map[string]knowledge.FoodInfo{
			"1": {Name: "Ghee", Dosha: "Vata Pacifying", Virya: "Cooling", Note: "builds ojas"},
			"2": {Name: "Chilli", Dosha: "Vata Aggravating, Pitta Aggravating", Virya: "Heating", Note: "drying"},
			"3": {Name: "Rice", Dosha: "Tridoshic", Virya: "Cooling", Note: "light"},
			"4": {Name: "Cucumber", Dosha: "Pitta Pacifying", Virya: "Cooling", Note: "cooling"},
			"5": {Name: "Coffee", Dosha: "Vata Aggravating", Virya: "Heating", Note: "stimulating"},
		},
	}
}

func newTestDietService(t *testing.T, user *types.User) DietService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return NewDietService(nil, log, dietBase(), &fakeUserRepo{user: user})
}

func TestGetDietPlan_SplitsPathyaAndApathyaByDominant(t *testing.T) {
	svc := newTestDietService(t, vataUser("919900112233"))

	plan, err := svc.GetDietPlan(context.Background(), "919900112233")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Prakriti != prakriti.DoshaVata {
		t.Fatalf("expected prakriti Vata got %q", plan.Prakriti)
	}

	pathya := map[string]bool{}
	for _, f := range plan.Pathya {
		pathya[f.Name] = true
	}
	apathya := map[string]bool{}
	for _, f := range plan.Apathya {
		apathya[f.Name] = true
	}
	if !pathya["Ghee"] {
		t.Fatalf("expected Ghee in pathya, got %v", plan.Pathya)
	}
	if !pathya["Rice"] {
		t.Fatalf("expected tridoshic Rice in pathya, got %v", plan.Pathya)
	}
	if pathya["Cucumber"] {
		t.Fatalf("pitta foods should not appear for a vata user")
	}
	if !apathya["Chilli"] || !apathya["Coffee"] {
		t.Fatalf("expected vata-aggravating foods in apathya, got %v", plan.Apathya)
	}
}

func TestGetDietPlan_UnclassifiedUserDefaultsToVata(t *testing.T) {
	user := &types.User{Phone: "919900112233"}
	svc := newTestDietService(t, user)

	plan, err := svc.GetDietPlan(context.Background(), "919900112233")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Prakriti != prakriti.DoshaVata {
		t.Fatalf("expected Vata default got %q", plan.Prakriti)
	}
}

func TestGetDietPlan_Deterministic(t *testing.T) {
	svc := newTestDietService(t, vataUser("919900112233"))

	first, err := svc.GetDietPlan(context.Background(), "919900112233")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := svc.GetDietPlan(context.Background(), "919900112233")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(again.Pathya) != len(first.Pathya) || len(again.Apathya) != len(first.Apathya) {
			t.Fatalf("plan lengths changed between calls")
		}
		for j := range first.Pathya {
			if again.Pathya[j].Name != first.Pathya[j].Name {
				t.Fatalf("pathya order changed between calls")
			}
		}
	}
}
