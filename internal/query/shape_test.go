package query

import (
	"encoding/json"
	"testing"
)

func TestShapedMarshalJSONPreservesInsertionOrder(t *testing.T) {
	shaped := NewShaped()
	shaped.Set("genre", "Horror")
	shaped.Set("id", "a1")
	shaped.Set("links", []Link{NewLink("/v1/authors/a1", "self", "GET")})

	got, err := json.Marshal(shaped)
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}

	want := `{"genre":"Horror","id":"a1","links":[{"href":"/v1/authors/a1","rel":"self","method":"GET"}]}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestShapedSetKeepsPositionOnOverwrite(t *testing.T) {
	shaped := NewShaped()
	shaped.Set("a", 1)
	shaped.Set("b", 2)
	shaped.Set("a", 3)

	if shaped.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", shaped.Len())
	}
	if keys := shaped.Keys(); keys[0] != "a" || keys[1] != "b" {
		t.Errorf("overwrite must not move keys, got %v", keys)
	}
	if got, _ := shaped.Get("a"); got != 3 {
		t.Errorf("a = %v, want 3", got)
	}
}

func TestShapedMarshalJSONEmpty(t *testing.T) {
	got, err := json.Marshal(NewShaped())
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}
	if string(got) != "{}" {
		t.Errorf("got %s, want {}", got)
	}
}
