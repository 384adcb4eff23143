package collections_test

import (
	"testing"

	"avquote/collections"
	"avquote/services"
	"avquote/testhelpers"
)

func TestSeed_CreatesCatalog(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	opts, err := services.ListCatalogOptions(app)
	if err != nil {
		t.Fatalf("ListCatalogOptions() error: %v", err)
	}
	if len(opts) == 0 {
		t.Fatal("expected seeded catalog options, got none")
	}

	seen := make(map[services.Category]bool)
	for _, o := range opts {
		seen[o.Category] = true
		if o.SubItems == nil {
			t.Errorf("option %q has nil sub items", o.Name)
		}
	}
	for _, c := range services.Categories {
		if !seen[c.ID] {
			t.Errorf("no catalog option seeded for category %q", c.ID)
		}
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	first, _ := services.ListCatalogOptions(app)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}
	second, _ := services.ListCatalogOptions(app)

	if len(first) != len(second) {
		t.Errorf("catalog size changed on reseed: %d -> %d", len(first), len(second))
	}
}
