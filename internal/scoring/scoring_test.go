package scoring

import (
	"errors"
	"strings"
	"testing"

	"github.com/verte-zerg/perfil/internal/model"
)

func TestCalculatePointsStrictlyDecreasing(t *testing.T) {
	for total := 1; total <= model.MaxClues; total++ {
		prev := total + 1
		for read := 1; read <= total; read++ {
			points, err := CalculatePoints(read, total)
			if err != nil {
				t.Fatalf("CalculatePoints(%d, %d): %v", read, total, err)
			}
			if points != prev-1 {
				t.Fatalf("CalculatePoints(%d, %d) = %d, expected %d", read, total, points, prev-1)
			}
			if !IsValidPointValue(points, total) {
				t.Fatalf("points %d should be valid for total %d", points, total)
			}
			prev = points
		}
		if first, _ := CalculatePoints(1, total); first != MaximumPoints(total) {
			t.Fatalf("first clue should be worth %d, got %d", total, first)
		}
		if last, _ := CalculatePoints(total, total); last != MinimumPoints() {
			t.Fatalf("last clue should be worth 1, got %d", last)
		}
	}
}

func TestCalculatePointsScenario(t *testing.T) {
	expected := map[int]int{1: 3, 2: 2, 3: 1}
	for read, want := range expected {
		got, err := CalculatePoints(read, 3)
		if err != nil || got != want {
			t.Fatalf("CalculatePoints(%d, 3) = %d, %v; expected %d", read, got, err, want)
		}
	}
}

func TestCalculatePointsRejectsInvalidInput(t *testing.T) {
	_, err := CalculatePoints(0, 20)
	var inv *InvalidInputError
	if !errors.As(err, &inv) || !strings.Contains(err.Error(), "no clues have been read") {
		t.Fatalf("expected no clues error, got %v", err)
	}
	if _, err := CalculatePoints(-2, 20); err == nil {
		t.Fatalf("expected negative cluesRead to fail")
	}
	_, err = CalculatePoints(21, 20)
	if !errors.As(err, &inv) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
	if !strings.Contains(err.Error(), "21") || !strings.Contains(err.Error(), "20") {
		t.Fatalf("expected both values in message, got %q", err.Error())
	}
}

func TestDefaultPointsUsesMaxClues(t *testing.T) {
	points, err := DefaultPoints(1)
	if err != nil || points != model.MaxClues {
		t.Fatalf("expected %d, got %d (%v)", model.MaxClues, points, err)
	}
}

func TestPredicates(t *testing.T) {
	if CanAwardPoints(0, 5) || CanAwardPoints(6, 5) || !CanAwardPoints(5, 5) || !CanAwardPoints(1, 5) {
		t.Fatalf("unexpected CanAwardPoints results")
	}
	if IsValidPointValue(0, 5) || IsValidPointValue(6, 5) || !IsValidPointValue(1, 5) {
		t.Fatalf("unexpected IsValidPointValue results")
	}
}
