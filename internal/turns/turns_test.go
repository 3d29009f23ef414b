package turns

import (
	"errors"
	"reflect"
	"testing"

	"github.com/verte-zerg/perfil/internal/model"
	"github.com/verte-zerg/perfil/internal/scoring"
)

func testProfile() model.Profile {
	return model.Profile{ID: "p1", Category: "movies", Name: "Test", Clues: []string{"c1", "c2", "c3"}}
}

func TestAdvanceSequentialScenario(t *testing.T) {
	p := testProfile()
	turn := model.CreateTurn(p.ID)
	adv, err := AdvanceToNextClue(turn, p, nil)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if adv.Turn.CluesRead != 1 || adv.ClueText != "c1" || adv.ClueIndex != 0 {
		t.Fatalf("unexpected advance: %+v", adv)
	}
	if !IsFirstClue(adv.Turn) || IsLastClue(adv.Turn, 3) {
		t.Fatalf("unexpected first/last flags")
	}
	points, err := scoring.CalculatePoints(adv.Turn.CluesRead, model.GetClueCount(p))
	if err != nil || points != 3 {
		t.Fatalf("expected 3 points, got %d (%v)", points, err)
	}
	adv, _ = AdvanceToNextClue(adv.Turn, p, nil)
	adv, _ = AdvanceToNextClue(adv.Turn, p, nil)
	if !IsLastClue(adv.Turn, 3) || adv.ClueText != "c3" {
		t.Fatalf("expected last clue c3, got %+v", adv)
	}
	if _, err := AdvanceToNextClue(adv.Turn, p, nil); !errors.Is(err, model.ErrMaxCluesReached) {
		t.Fatalf("expected max clues error, got %v", err)
	}
}

func TestAdvanceShuffled(t *testing.T) {
	p := testProfile()
	perm := []int{2, 0, 1}
	turn := model.CreateTurn(p.ID)
	var texts []string
	var idxs []int
	for i := 0; i < 3; i++ {
		adv, err := AdvanceToNextClue(turn, p, perm)
		if err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
		texts = append(texts, adv.ClueText)
		idxs = append(idxs, adv.ClueIndex)
		turn = adv.Turn
	}
	if !reflect.DeepEqual(texts, []string{"c3", "c1", "c2"}) {
		t.Fatalf("unexpected shuffled texts: %v", texts)
	}
	if !reflect.DeepEqual(idxs, perm) {
		t.Fatalf("unexpected shuffled indices: %v", idxs)
	}
}

func TestCurrentClue(t *testing.T) {
	p := testProfile()
	if _, ok := CurrentClue(model.CreateTurn(p.ID), p); ok {
		t.Fatalf("expected no clue before reading")
	}
	turn := model.Turn{ProfileID: p.ID, CluesRead: 2}
	if clue, ok := CurrentClue(turn, p); !ok || clue != "c2" {
		t.Fatalf("expected c2, got %q", clue)
	}
	if _, ok := CurrentClue(model.Turn{ProfileID: p.ID, CluesRead: 7}, p); ok {
		t.Fatalf("expected invalid cluesRead to yield no clue")
	}
	if clue, ok := CurrentClueWithShuffle(turn, p, []int{1, 2, 0}); !ok || clue != "c3" {
		t.Fatalf("expected c3, got %q", clue)
	}
	if _, ok := CurrentClueWithShuffle(turn, p, nil); ok {
		t.Fatalf("expected empty permutation to yield no clue")
	}
	if _, ok := CurrentClueWithShuffle(turn, p, []int{0}); ok {
		t.Fatalf("expected short permutation to yield no clue")
	}
}

func TestRevealedCluesMostRecentFirst(t *testing.T) {
	p := testProfile()
	turn := model.Turn{ProfileID: p.ID, CluesRead: 3}
	if got := RevealedClues(turn, p, nil); !reflect.DeepEqual(got, []string{"c3", "c2", "c1"}) {
		t.Fatalf("unexpected sequential clues: %v", got)
	}
	perm := []int{1, 2, 0}
	if got := RevealedClues(turn, p, perm); !reflect.DeepEqual(got, []string{"c1", "c3", "c2"}) {
		t.Fatalf("unexpected shuffled clues: %v", got)
	}
	if got := RevealedClueIndices(turn, perm); !reflect.DeepEqual(got, []int{0, 2, 1}) {
		t.Fatalf("unexpected shuffled indices: %v", got)
	}
	if got := RevealedClueIndices(model.Turn{ProfileID: p.ID, CluesRead: 2}, nil); !reflect.DeepEqual(got, []int{1, 0}) {
		t.Fatalf("unexpected sequential indices: %v", got)
	}
	if got := RevealedClues(model.CreateTurn(p.ID), p, nil); len(got) != 0 {
		t.Fatalf("expected no clues, got %v", got)
	}
}
