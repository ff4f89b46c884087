package gamedata

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/parcel"
)

const sampleEvent = `
id: 801
name: Sample Event
currencyIds:
  - type: Currency
    id: 100
stages:
  - id: 1
    name: Quest 1
    apCost: 10
    farmable: true
    rewards:
      - parcel:
          type: Currency
          id: 100
        amount: 5
        probability: 5000
        category: Event
        bonusEligible: true
shops:
  - id: 1
    name: Exchange
    entries:
      - id: 1
        cost:
          parcel:
            type: Currency
            id: 100
          amount: 50
        reward:
          parcel:
            type: Item
            id: 200
          amount: 1
        purchaseLimit: 3
boxGacha:
  loopFrom: 0
  rounds:
    - cost:
        parcel:
          type: Currency
          id: 100
        amount: 10
      rewards:
        - parcel:
            type: Item
            id: 200
          amount: 1
gachaGroups:
  - id: 1
    entries:
      - parcel:
          type: Item
          id: 200
        amount: 2
        weight: 1
      - parcel:
          type: GachaGroup
          id: 2
        amount: 1
        weight: 1
  - id: 2
    entries:
      - parcel:
          type: Item
          id: 201
        amount: 4
        weight: 1
`

func writeEvent(t *testing.T, dir string, eventID int, contents string) {
	t.Helper()
	eventsDir := filepath.Join(dir, "events")
	if err := os.MkdirAll(eventsDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	path := filepath.Join(eventsDir, filepathBase(eventID))
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func filepathBase(eventID int) string {
	return filepath.Base(Paths{}.EventPath(eventID))
}

func TestLoaderLoadsAndCaches(t *testing.T) {
	dir := t.TempDir()
	writeEvent(t, dir, 801, sampleEvent)

	loader := NewLoader(dir)
	event, err := loader.Load(801)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if event.Name != "Sample Event" {
		t.Errorf("event name = %s, expected Sample Event", event.Name)
	}
	if len(event.Stages) != 1 || event.Stages[0].APCost != 10 {
		t.Errorf("stages not parsed: %+v", event.Stages)
	}
	if event.BoxGacha == nil || len(event.BoxGacha.Rounds) != 1 {
		t.Errorf("box gacha table not parsed")
	}

	// The cached bundle is shared by reference.
	again, err := loader.Load(801)
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if again != event {
		t.Errorf("second load returned a different instance")
	}
}

func TestLoaderInvalidate(t *testing.T) {
	dir := t.TempDir()
	writeEvent(t, dir, 801, sampleEvent)

	loader := NewLoader(dir)
	first, err := loader.Load(801)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	loader.Invalidate()
	second, err := loader.Load(801)
	if err != nil {
		t.Fatalf("Load() after Invalidate() error = %v", err)
	}
	if first == second {
		t.Errorf("Invalidate() did not force a re-read")
	}
}

func TestLoaderMissingEvent(t *testing.T) {
	loader := NewLoader(t.TempDir())
	if _, err := loader.Load(999); err == nil {
		t.Errorf("Load() of a missing event succeeded")
	}
}

func TestStageByID(t *testing.T) {
	event := &Event{Stages: []Stage{{ID: 1}, {ID: 7}}}

	if stage := event.StageByID(7); stage == nil || stage.ID != 7 {
		t.Errorf("StageByID(7) = %+v", stage)
	}
	if stage := event.StageByID(99); stage != nil {
		t.Errorf("StageByID(99) = %+v, expected nil", stage)
	}
}

func TestEventCurrencySet(t *testing.T) {
	key := parcel.Key{Type: parcel.TypeCurrency, ID: 100}
	event := &Event{CurrencyIDs: []parcel.Key{key}}

	set := event.EventCurrencySet()
	if !set[key] {
		t.Errorf("currency key missing from set")
	}
	if set[parcel.Key{Type: parcel.TypeItem, ID: 100}] {
		t.Errorf("unrelated key present in set")
	}
}

func TestResolveFlattensNestedGroups(t *testing.T) {
	idx := IndexGroups([]GachaGroup{
		{
			ID: 1,
			Entries: []GachaGroupEntry{
				{Parcel: parcel.Key{Type: parcel.TypeItem, ID: 200}, Amount: 2, Weight: 1},
				{Parcel: parcel.Key{Type: parcel.TypeGachaGroup, ID: 2}, Amount: 1, Weight: 1},
			},
		},
		{
			ID: 2,
			Entries: []GachaGroupEntry{
				{Parcel: parcel.Key{Type: parcel.TypeItem, ID: 201}, Amount: 4, Weight: 1},
			},
		},
	})

	amounts := idx.Resolve(1)

	// Entry 1: 1/2 x 2 = 1. Entry 2: 1/2 x 1 share into group 2, fully on
	// item 201: 0.5 x 4 = 2.
	if got := amounts[parcel.Key{Type: parcel.TypeItem, ID: 200}]; math.Abs(got-1) > 1e-9 {
		t.Errorf("item 200 = %v, expected 1", got)
	}
	if got := amounts[parcel.Key{Type: parcel.TypeItem, ID: 201}]; math.Abs(got-2) > 1e-9 {
		t.Errorf("item 201 = %v, expected 2", got)
	}
}

func TestResolveSelfReferenceTerminates(t *testing.T) {
	idx := IndexGroups([]GachaGroup{
		{
			ID: 1,
			Entries: []GachaGroupEntry{
				{Parcel: parcel.Key{Type: parcel.TypeItem, ID: 200}, Amount: 1, Weight: 1},
				{Parcel: parcel.Key{Type: parcel.TypeGachaGroup, ID: 1}, Amount: 1, Weight: 1},
			},
		},
	})

	amounts := idx.Resolve(1)

	// Each level contributes 1/2 of the remaining share; the depth cap stops
	// the geometric series just short of 1.
	got := amounts[parcel.Key{Type: parcel.TypeItem, ID: 200}]
	if got <= 0.9 || got >= 1.0+1e-9 {
		t.Errorf("self-referential resolve = %v, expected just under 1", got)
	}
}

func TestResolveUnknownGroup(t *testing.T) {
	idx := IndexGroups(nil)
	if amounts := idx.Resolve(42); len(amounts) != 0 {
		t.Errorf("unknown group resolved to %v", amounts)
	}
}

func TestValidateWarnings(t *testing.T) {
	event := &Event{
		Stages: []Stage{
			{ID: 1, APCost: -5, Rewards: []RewardRule{{Probability: 20000}}},
		},
		BoxGacha: &BoxGachaTable{Rounds: []BoxGachaRound{{}}, LoopFrom: 5},
		Treasure: &TreasureMap{Width: 3, Height: 3, Treasures: []Treasure{{Width: 4, Height: 1}}},
		Groups:   []GachaGroup{{ID: 1}, {ID: 1}},
	}

	warnings := event.Validate()

	expectWarning := func(fragment string) {
		t.Helper()
		for _, w := range warnings {
			if strings.Contains(w, fragment) {
				return
			}
		}
		t.Errorf("no warning containing %q in %v", fragment, warnings)
	}

	expectWarning("negative AP cost")
	expectWarning("outside [0,10000]")
	expectWarning("loop index")
	expectWarning("exceeds")
	expectWarning("declared more than once")
}

func TestValidateCleanBundle(t *testing.T) {
	event := &Event{
		Stages: []Stage{{ID: 1, APCost: 10, Rewards: []RewardRule{{Probability: 5000, Amount: 1}}}},
	}
	if warnings := event.Validate(); len(warnings) != 0 {
		t.Errorf("clean bundle warned: %v", warnings)
	}
}
