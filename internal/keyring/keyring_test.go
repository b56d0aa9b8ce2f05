package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/agenda/internal/constants"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	want := "postgres://reader@localhost:5432/agenda?sslmode=disable"
	if err := SetConnectionString(want); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != want {
		t.Errorf("GetConnectionString() = %q, want %q", got, want)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	for _, v := range []string{"", "   "} {
		if err := SetConnectionString(v); err == nil {
			t.Errorf("SetConnectionString(%q) should return an error", v)
		}
	}
}

func TestGetConnectionStringNotFound(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteConnectionString()

	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://reader@localhost/agenda"); err != nil {
		t.Fatal(err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestResolveConnectionString(t *testing.T) {
	gokeyring.MockInit()
	if err := SetConnectionString("postgres://keyring@localhost/agenda"); err != nil {
		t.Fatal(err)
	}

	t.Setenv(constants.EnvDBConnection, "postgres://env@localhost/agenda")
	got, err := ResolveConnectionString()
	if err != nil || got != "postgres://env@localhost/agenda" {
		t.Errorf("ResolveConnectionString() = %q, %v; want env value", got, err)
	}

	t.Setenv(constants.EnvDBConnection, "")
	got, err = ResolveConnectionString()
	if err != nil || got != "postgres://keyring@localhost/agenda" {
		t.Errorf("ResolveConnectionString() = %q, %v; want keyring value", got, err)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("IsAvailable() should be true with mock keyring")
	}

	gokeyring.MockInitWithError(errors.New("no dbus"))
	if IsAvailable() {
		t.Error("IsAvailable() should be false when the keyring errors")
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrKeyringUnavailable)
	}
}
