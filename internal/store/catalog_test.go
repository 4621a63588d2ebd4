package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/roach88/querydsl/internal/wire"
)

func TestSave_CreatesEntry(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	body := []byte(`{"query":{"match_all":{}}}`)

	saved, outcome, err := s.Save(ctx, "everything", body)
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if outcome != Created {
		t.Errorf("outcome = %v, want created", outcome)
	}
	if saved.Revision != 1 {
		t.Errorf("revision = %d, want 1", saved.Revision)
	}
	if saved.Body != string(body) {
		t.Errorf("body = %q, want %q", saved.Body, body)
	}
	if want := wire.Fingerprint(wire.DomainRequest, body); saved.Fingerprint != want {
		t.Errorf("fingerprint = %q, want %q", saved.Fingerprint, want)
	}

	id, err := uuid.Parse(saved.ID)
	if err != nil {
		t.Fatalf("id %q is not a UUID: %v", saved.ID, err)
	}
	if id.Version() != 7 {
		t.Errorf("id version = %d, want 7", id.Version())
	}
}

func TestSave_RevisionBumpsOnlyOnChange(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, _, err := s.Save(ctx, "errors", []byte(`{"query":{"term":{"level":{"value":"error"}}}}`))
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	same, outcome, err := s.Save(ctx, "errors", []byte(`{"query":{"term":{"level":{"value":"error"}}}}`))
	if err != nil {
		t.Fatalf("second Save() failed: %v", err)
	}
	if outcome != Unchanged {
		t.Errorf("outcome = %v, want unchanged", outcome)
	}
	if same != first {
		t.Errorf("unchanged save returned %+v, want %+v", same, first)
	}

	changed, outcome, err := s.Save(ctx, "errors", []byte(`{"query":{"term":{"level":{"value":"error","boost":2.0}}}}`))
	if err != nil {
		t.Fatalf("third Save() failed: %v", err)
	}
	if outcome != Updated {
		t.Errorf("outcome = %v, want updated", outcome)
	}
	if changed.ID != first.ID {
		t.Errorf("id changed from %s to %s", first.ID, changed.ID)
	}
	if changed.Revision != 2 {
		t.Errorf("revision = %d, want 2", changed.Revision)
	}

	got, err := s.Get(ctx, "errors")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != changed {
		t.Errorf("Get() = %+v, want %+v", got, changed)
	}
}

func TestSave_InvalidInput(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if _, _, err := s.Save(ctx, "  ", []byte(`{}`)); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Save() with blank name error = %v, want ErrInvalidName", err)
	}
	if _, _, err := s.Save(ctx, "empty", nil); err == nil {
		t.Error("Save() with empty body should fail")
	}
}

func TestGet_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestList_OrderedByName(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	empty, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("List() on empty catalog = %#v, want empty non-nil slice", empty)
	}

	// Binary collation puts uppercase before lowercase.
	for _, name := range []string{"beta", "Alpha", "alpha"} {
		if _, _, err := s.Save(ctx, name, []byte(`{"size":1}`)); err != nil {
			t.Fatalf("Save(%s) failed: %v", name, err)
		}
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	var names []string
	for _, q := range list {
		names = append(names, q.Name)
	}
	want := []string{"Alpha", "alpha", "beta"}
	if len(names) != len(want) {
		t.Fatalf("List() names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFindByFingerprint(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	body := []byte(`{"query":{"exists":{"field":"user"}}}`)

	for _, name := range []string{"with-user", "has-user"} {
		if _, _, err := s.Save(ctx, name, body); err != nil {
			t.Fatalf("Save(%s) failed: %v", name, err)
		}
	}
	if _, _, err := s.Save(ctx, "other", []byte(`{"size":0}`)); err != nil {
		t.Fatalf("Save(other) failed: %v", err)
	}

	matches, err := s.FindByFingerprint(ctx, wire.Fingerprint(wire.DomainRequest, body))
	if err != nil {
		t.Fatalf("FindByFingerprint() failed: %v", err)
	}
	if len(matches) != 2 || matches[0].Name != "has-user" || matches[1].Name != "with-user" {
		t.Errorf("FindByFingerprint() = %+v, want has-user and with-user", matches)
	}
}

func TestDelete(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if _, _, err := s.Save(ctx, "gone", []byte(`{"size":1}`)); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := s.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := s.Get(ctx, "gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestOutcomeString(t *testing.T) {
	if Created.String() != "created" || Updated.String() != "updated" || Unchanged.String() != "unchanged" {
		t.Error("unexpected Outcome strings")
	}
	if Outcome(9).String() != "Outcome(9)" {
		t.Errorf("Outcome(9).String() = %q", Outcome(9).String())
	}
}
