package auth

import "testing"

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "pw1" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPasswordHash("pw1", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPasswordHash("pw2", hash) {
		t.Fatal("wrong password accepted")
	}
}
