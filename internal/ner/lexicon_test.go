package ner

import (
	"context"
	"testing"
)

func TestLexiconRecognizer_BasicMatch(t *testing.T) {
	r := NewLexiconRecognizer(Lexicon{
		Persons:       []string{"김철수"},
		Organizations: []string{"개발팀"},
	})

	ents, err := r.Recognize(context.Background(), "김철수 님이 개발팀 회의에 참석했습니다")
	if err != nil {
		t.Fatalf("Recognize() error: %v", err)
	}
	if len(ents) != 2 {
		t.Fatalf("Expected 2 entities, got %d: %+v", len(ents), ents)
	}
	if ents[0].Text != "김철수" || ents[0].Label != LabelPerson {
		t.Errorf("Expected 김철수/PS first, got %s/%s", ents[0].Text, ents[0].Label)
	}
	if ents[1].Text != "개발팀" || ents[1].Label != LabelOrganization {
		t.Errorf("Expected 개발팀/OG second, got %s/%s", ents[1].Text, ents[1].Label)
	}
}

func TestLexiconRecognizer_LongestWins(t *testing.T) {
	r := NewLexiconRecognizer(Lexicon{
		Locations:     []string{"서울"},
		Organizations: []string{"서울지사"},
	})

	ents, err := r.Recognize(context.Background(), "서울지사에서 미팅")
	if err != nil {
		t.Fatalf("Recognize() error: %v", err)
	}
	if len(ents) != 1 {
		t.Fatalf("Expected 1 entity, got %d: %+v", len(ents), ents)
	}
	if ents[0].Text != "서울지사" || ents[0].Label != LabelOrganization {
		t.Errorf("Expected 서울지사/OG, got %s/%s", ents[0].Text, ents[0].Label)
	}
}

func TestLexiconRecognizer_NoMatches(t *testing.T) {
	r := NewLexiconRecognizer(Lexicon{Persons: []string{"김철수"}})
	ents, err := r.Recognize(context.Background(), "오늘은 아무 일도 없었다")
	if err != nil {
		t.Fatalf("Recognize() error: %v", err)
	}
	if len(ents) != 0 {
		t.Errorf("Expected no entities, got %+v", ents)
	}
}

func TestLexiconRecognizer_RepeatedTerm(t *testing.T) {
	r := NewLexiconRecognizer(Lexicon{Persons: []string{"박영희"}})
	ents, err := r.Recognize(context.Background(), "박영희 씨와 박영희 팀장")
	if err != nil {
		t.Fatalf("Recognize() error: %v", err)
	}
	if len(ents) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(ents))
	}
	if ents[0].Start >= ents[1].Start {
		t.Errorf("Matches should be in text order: %+v", ents)
	}
}

