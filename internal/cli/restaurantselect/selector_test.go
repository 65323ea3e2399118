package restaurantselect

import (
	"testing"

	"github.com/silverstar-dev/silverstar/internal/api"
	"github.com/silverstar-dev/silverstar/internal/cli/userconfig"
)

var testRestaurants = []api.Restaurant{
	{ID: "r1", RestaurantName: "Silver Star"},
	{ID: "r2", RestaurantName: "Golden Dragon"},
}

func TestByIDOrName(t *testing.T) {
	byID, err := ByIDOrName(testRestaurants, "r2")
	if err != nil {
		t.Fatalf("lookup by id failed: %v", err)
	}
	if byID.RestaurantName != "Golden Dragon" {
		t.Errorf("expected Golden Dragon, got %s", byID.RestaurantName)
	}

	byName, err := ByIDOrName(testRestaurants, "Silver Star")
	if err != nil {
		t.Fatalf("lookup by name failed: %v", err)
	}
	if byName.ID != "r1" {
		t.Errorf("expected r1, got %s", byName.ID)
	}

	if _, err := ByIDOrName(testRestaurants, "nope"); err == nil {
		t.Error("expected error for unknown restaurant")
	}
}

func TestResolveExplicitArgumentWins(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// Remembered selection must lose against the explicit argument
	if err := userconfig.SetSelectedRestaurant("r1", "Silver Star"); err != nil {
		t.Fatal(err)
	}

	r, err := Resolve(testRestaurants, "r2")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.ID != "r2" {
		t.Errorf("expected r2, got %s", r.ID)
	}
}

func TestResolveUsesRememberedSelection(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := userconfig.SetSelectedRestaurant("r2", "Golden Dragon"); err != nil {
		t.Fatal(err)
	}

	r, err := Resolve(testRestaurants, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.ID != "r2" {
		t.Errorf("expected remembered r2, got %s", r.ID)
	}
}

func TestResolveSingleRestaurantAutoPicks(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	single := testRestaurants[:1]
	r, err := Resolve(single, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.ID != "r1" {
		t.Errorf("expected r1, got %s", r.ID)
	}

	// The auto-pick is remembered for next time
	id, _, err := userconfig.GetSelectedRestaurant()
	if err != nil {
		t.Fatal(err)
	}
	if id != "r1" {
		t.Errorf("expected saved selection r1, got %q", id)
	}
}

func TestResolveForgetsStaleSelection(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := userconfig.SetSelectedRestaurant("gone", "Closed Down"); err != nil {
		t.Fatal(err)
	}

	// One restaurant left: the stale selection is dropped and the single
	// remaining one picked.
	single := testRestaurants[:1]
	r, err := Resolve(single, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.ID != "r1" {
		t.Errorf("expected r1 after stale selection, got %s", r.ID)
	}
}
