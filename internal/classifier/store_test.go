package classifier

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "data", "classifier.json"))

	// Antes do primeiro salvamento não há snapshot.
	if _, ok, err := store.LoadSnapshot(); err != nil || ok {
		t.Fatalf("LoadSnapshot em store vazio = ok:%v err:%v", ok, err)
	}

	want := []byte(`{"docs":[]}`)
	if err := store.SaveSnapshot(want); err != nil {
		t.Fatalf("SaveSnapshot falhou: %v", err)
	}

	got, ok, err := store.LoadSnapshot()
	if err != nil || !ok {
		t.Fatalf("LoadSnapshot = ok:%v err:%v", ok, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("snapshot lido difere do salvo: %q != %q", got, want)
	}
}

func TestFileStore_Overwrites(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "classifier.json"))
	if err := store.SaveSnapshot([]byte("primeiro")); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveSnapshot([]byte("segundo")); err != nil {
		t.Fatal(err)
	}

	got, _, err := store.LoadSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "segundo" {
		t.Errorf("snapshot deveria ser sobrescrito, veio %q", got)
	}
}
