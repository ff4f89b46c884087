package rng

import (
	"testing"
)

func TestSeededSourceDeterministic(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)

	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("iteration %d: same seed produced different streams", i)
		}
	}
}

func TestSeededIntNBounds(t *testing.T) {
	src := NewSeeded(7)
	for i := 0; i < 1000; i++ {
		v := src.IntN(6)
		if v < 0 || v >= 6 {
			t.Fatalf("IntN(6) = %d, out of range", v)
		}
	}
}

func TestDefaultSourceRange(t *testing.T) {
	src := Default()
	for i := 0; i < 100; i++ {
		v := src.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v, out of [0,1)", v)
		}
	}
}

func TestChance(t *testing.T) {
	src := NewSeeded(1)

	if Chance(src, 0) {
		t.Errorf("Chance(0) hit")
	}
	if Chance(src, -0.5) {
		t.Errorf("Chance(-0.5) hit")
	}
	if !Chance(src, 1) {
		t.Errorf("Chance(1) missed")
	}
	if !Chance(src, 1.5) {
		t.Errorf("Chance(1.5) missed")
	}

	hits := 0
	trials := 10000
	for i := 0; i < trials; i++ {
		if Chance(src, 0.3) {
			hits++
		}
	}
	rate := float64(hits) / float64(trials)
	if rate < 0.25 || rate > 0.35 {
		t.Errorf("Chance(0.3) hit rate = %v, expected near 0.3", rate)
	}
}

func TestWeightedIndex(t *testing.T) {
	src := NewSeeded(2)

	t.Run("No positive weights", func(t *testing.T) {
		if idx := WeightedIndex(src, []float64{0, -1, 0}); idx != -1 {
			t.Errorf("WeightedIndex() = %d, expected -1", idx)
		}
	})

	t.Run("Single positive weight always wins", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			if idx := WeightedIndex(src, []float64{0, 5, 0}); idx != 1 {
				t.Fatalf("WeightedIndex() = %d, expected 1", idx)
			}
		}
	})

	t.Run("Distribution tracks weights", func(t *testing.T) {
		counts := make([]int, 2)
		trials := 10000
		for i := 0; i < trials; i++ {
			idx := WeightedIndex(src, []float64{3, 1})
			counts[idx]++
		}
		rate := float64(counts[0]) / float64(trials)
		if rate < 0.70 || rate > 0.80 {
			t.Errorf("weight-3 rate = %v, expected near 0.75", rate)
		}
	})

	t.Run("Negative weights skipped", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			idx := WeightedIndex(src, []float64{-5, 2, -1})
			if idx != 1 {
				t.Fatalf("WeightedIndex() = %d, expected 1", idx)
			}
		}
	})
}

func TestShuffleIsPermutation(t *testing.T) {
	src := NewSeeded(3)
	values := []int{0, 1, 2, 3, 4, 5, 6, 7}
	Shuffle(src, values)

	seen := make(map[int]bool, len(values))
	for _, v := range values {
		if v < 0 || v >= 8 || seen[v] {
			t.Fatalf("shuffle result %v is not a permutation", values)
		}
		seen[v] = true
	}
}
