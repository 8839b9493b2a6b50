package services

import "testing"

func TestHashContent(t *testing.T) {
	if got := HashContent("hello"); got != "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824" {
		t.Fatalf("unexpected digest: %s", got)
	}
	if HashContent("a") == HashContent("b") {
		t.Fatal("distinct content produced identical digests")
	}
	if HashContent("same") != HashContent("same") {
		t.Fatal("digest is not deterministic")
	}
}
