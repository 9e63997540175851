package appwrite

import "testing"

func TestEqual(t *testing.T) {
	got := Equal("userId", "user-1")
	want := `{"method":"equal","attribute":"userId","values":["user-1"]}`
	if got != want {
		t.Errorf("Equal() = %s, want %s", got, want)
	}
}

func TestOrderDesc(t *testing.T) {
	got := OrderDesc("$createdAt")
	want := `{"method":"orderDesc","attribute":"$createdAt"}`
	if got != want {
		t.Errorf("OrderDesc() = %s, want %s", got, want)
	}
}
