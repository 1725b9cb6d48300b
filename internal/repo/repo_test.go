package repo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"hospital-manager/internal/cache"
	"hospital-manager/internal/model"
	"hospital-manager/internal/repo"
	"hospital-manager/internal/store"
	"hospital-manager/internal/store/storetest"
)

func setup(t *testing.T) (*storetest.Server, *cache.Cache, *repo.Set) {
	t.Helper()
	srv := storetest.New()
	t.Cleanup(srv.Close)
	c := cache.New()
	return srv, c, repo.NewSet(store.NewClient(srv.URL, 1000, 1000), c)
}

func patient(name, doc string) *model.Patient {
	return &model.Patient{Person: model.Person{
		Name:           name,
		Age:            40,
		Address:        "1 Main St",
		Phone:          "555-0101",
		Email:          "p@example.com",
		DocumentNumber: doc,
	}}
}

func TestCreateMirrorsCache(t *testing.T) {
	_, c, set := setup(t)

	p := patient("Ada", "D-1")
	key, err := set.Patients.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, ok := c.Patients.Get(key)
	if !ok {
		t.Fatal("record missing from cache after create")
	}
	if got != p {
		t.Fatal("cache holds a different record")
	}
}

func TestCreateFailureLeavesCacheUntouched(t *testing.T) {
	srv, c, set := setup(t)

	seeded := patient("Ada", "D-1")
	if _, err := set.Patients.Create(context.Background(), seeded); err != nil {
		t.Fatalf("seed: %v", err)
	}

	srv.FailAll = true
	if _, err := set.Patients.Create(context.Background(), patient("Bob", "D-2")); err == nil {
		t.Fatal("expected error")
	}
	if c.Patients.Len() != 1 {
		t.Fatalf("cache size changed: %d", c.Patients.Len())
	}
	if _, got, _ := cache.FindByName(c.Patients, "Ada"); got != seeded {
		t.Fatal("cache contents changed")
	}
}

func TestUpdateFailureLeavesCacheUntouched(t *testing.T) {
	srv, c, set := setup(t)

	p := patient("Ada", "D-1")
	key, err := set.Patients.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	srv.FailAll = true
	changed := *p
	changed.Name = "Renamed"
	if err := set.Patients.Update(context.Background(), key, &changed); err == nil {
		t.Fatal("expected error")
	}

	got, _ := c.Patients.Get(key)
	if got != p || got.Name != "Ada" {
		t.Fatal("failed update leaked into the cache")
	}
}

func TestDeleteByNameMissNoRemoteCall(t *testing.T) {
	srv, _, set := setup(t)

	err := repo.DeleteByName(context.Background(), set.Patients, "Nobody")
	if !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if n := len(srv.Requests()); n != 0 {
		t.Fatalf("expected zero remote calls, saw %d", n)
	}
}

func TestDeleteByName(t *testing.T) {
	_, c, set := setup(t)

	if _, err := set.Patients.Create(context.Background(), patient("Ada", "D-1")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := repo.DeleteByName(context.Background(), set.Patients, "ada"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if c.Patients.Len() != 0 {
		t.Fatal("record still cached after delete")
	}
}

func TestRefreshFailureResetsKind(t *testing.T) {
	srv, c, set := setup(t)

	if _, err := set.Patients.Create(context.Background(), patient("Ada", "D-1")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	srv.FailAll = true
	if err := set.Patients.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	// empty beats stale
	if c.Patients.Len() != 0 {
		t.Fatalf("stale entries survived: %d", c.Patients.Len())
	}
}

func TestLoadAll(t *testing.T) {
	srv, c, set := setup(t)

	srv.Seed("Patients", uuid.New().String(), map[string]any{"id": uuid.New().String(), "name": "Ada"})
	srv.Seed("Doctors", uuid.New().String(), map[string]any{"id": uuid.New().String(), "name": "Dr. Gray"})

	if err := set.LoadAll(context.Background()); err != nil {
		t.Fatalf("load all: %v", err)
	}
	if c.Patients.Len() != 1 || c.Doctors.Len() != 1 {
		t.Fatalf("unexpected cache sizes: %d patients, %d doctors", c.Patients.Len(), c.Doctors.Len())
	}
	// untouched kinds end up empty maps, not nil
	if c.Appointments.Values() == nil && c.Appointments.Len() != 0 {
		t.Fatal("appointments kind not initialized")
	}
}

func TestUpdateFieldMirrorsUpdatedRecord(t *testing.T) {
	_, c, set := setup(t)

	p := patient("Ada", "D-1")
	key, err := set.Patients.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	updated := *p
	updated.AppointmentIDs = []uuid.UUID{uuid.New()}
	if err := set.Patients.UpdateField(context.Background(), key, "appointmentIds", updated.AppointmentIDs, &updated); err != nil {
		t.Fatalf("update field: %v", err)
	}

	got, _ := c.Patients.Get(key)
	if len(got.AppointmentIDs) != 1 {
		t.Fatal("cache not updated with patched record")
	}
}
