package client

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "clients.toml"), nil)
}

func assertClientEqual(t *testing.T, got, want Client) {
	t.Helper()
	if got.ID != want.ID || got.Name != want.Name || got.Company != want.Company ||
		got.Email != want.Email || got.Phone != want.Phone || got.Address != want.Address ||
		got.Notes != want.Notes || got.BillingCycle != want.BillingCycle ||
		got.Amount != want.Amount || got.Currency != want.Currency ||
		got.NextPayment != want.NextPayment {
		t.Errorf("client = %+v, want %+v", got, want)
	}
	if !slices.Equal(got.Projects, want.Projects) {
		t.Errorf("client projects = %q, want %q", got.Projects, want.Projects)
	}
}

func TestStoreMissingFileReadsEmpty(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	clients, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(clients) != 0 {
		t.Errorf("List() = %d clients, want 0", len(clients))
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	full := Client{
		ID:           "acme",
		Name:         "Acme Corp",
		Company:      "Acme Holdings Inc",
		Email:        "billing@acme.test",
		Phone:        "555-0100",
		Address:      "1 Coyote Way",
		Notes:        "prefers invoices in March",
		BillingCycle: CycleMonthly,
		Amount:       1200,
		Currency:     "USD",
		NextPayment:  "2026-04-01",
		Projects:     []string{"acme-site", "acme-api"},
	}

	if err := store.Create(full); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	got, err := store.Get("acme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	assertClientEqual(t, got, full)
}

func TestStoreCreateAppliesDefaults(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Create(Client{ID: "bare", Name: "Bare"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	got, err := store.Get("bare")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.BillingCycle != CycleAnnual {
		t.Errorf("BillingCycle = %q, want %q", got.BillingCycle, CycleAnnual)
	}
	if got.Currency != DefaultCurrency {
		t.Errorf("Currency = %q, want %q", got.Currency, DefaultCurrency)
	}
}

func TestStoreCreateDuplicateLeavesStoreUnchanged(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Create(Client{ID: "acme", Name: "Original"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err := store.Create(Client{ID: "acme", Name: "Impostor"})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("Create() error = %v, want ErrDuplicateID", err)
	}

	got, err := store.Get("acme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Original" {
		t.Errorf("Name = %q, want %q after failed create", got.Name, "Original")
	}
	clients, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(clients) != 1 {
		t.Errorf("List() = %d clients, want 1", len(clients))
	}
}

func TestStoreCreateInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		client Client
	}{
		{name: "missing id", client: Client{Name: "No ID"}},
		{name: "missing name", client: Client{ID: "no-name"}},
		{name: "missing both", client: Client{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := newTestStore(t)
			if err := store.Create(tt.client); !errors.Is(err, ErrInvalidClient) {
				t.Errorf("Create() error = %v, want ErrInvalidClient", err)
			}
		})
	}
}

func TestStoreGetNotFound(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if _, err := store.Get("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestStoreUpdate(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Create(Client{ID: "acme", Name: "Acme", Amount: 100}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.Update(Client{ID: "acme", Name: "Acme Renamed", Amount: 250}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, err := store.Get("acme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Acme Renamed" || got.Amount != 250 {
		t.Errorf("after update got name=%q amount=%v, want %q and 250", got.Name, got.Amount, "Acme Renamed")
	}
}

func TestStoreUpdateMissingFailsLoud(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Update(Client{ID: "ghost", Name: "Ghost"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestStoreDeleteIdempotent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Create(Client{ID: "acme", Name: "Acme"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Create(Client{ID: "globex", Name: "Globex"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.Delete("acme"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete("acme"); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}
	if err := store.Delete("never-existed"); err != nil {
		t.Errorf("Delete(absent) error = %v, want nil", err)
	}

	clients, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(clients) != 1 || clients[0].ID != "globex" {
		t.Errorf("List() = %+v, want only globex", clients)
	}
}

func TestStoreLinkProjectExclusive(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Create(Client{ID: "acme", Name: "Acme", Projects: []string{"site"}}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Create(Client{ID: "globex", Name: "Globex"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.LinkProject("site", "globex"); err != nil {
		t.Fatalf("LinkProject() error = %v", err)
	}

	acme, err := store.Get("acme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if slices.Contains(acme.Projects, "site") {
		t.Errorf("acme still holds %q after relink", "site")
	}
	globex, err := store.Get("globex")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !slices.Equal(globex.Projects, []string{"site"}) {
		t.Errorf("globex projects = %q, want [site]", globex.Projects)
	}
}

func TestStoreLinkProjectTwiceKeepsSingleEntry(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Create(Client{ID: "acme", Name: "Acme"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := store.LinkProject("site", "acme"); err != nil {
			t.Fatalf("LinkProject() error = %v", err)
		}
	}

	got, err := store.Get("acme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !slices.Equal(got.Projects, []string{"site"}) {
		t.Errorf("projects = %q, want single [site]", got.Projects)
	}
}

func TestStoreLinkProjectMissingClient(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Create(Client{ID: "acme", Name: "Acme", Projects: []string{"site"}}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.LinkProject("site", "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("LinkProject() error = %v, want ErrNotFound", err)
	}

	// The failed link must not have detached the project.
	got, err := store.Get("acme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !slices.Equal(got.Projects, []string{"site"}) {
		t.Errorf("projects = %q, want [site] untouched", got.Projects)
	}
}

func TestStoreUnlinkProject(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Create(Client{ID: "acme", Name: "Acme", Projects: []string{"site", "api"}}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.UnlinkProject("site"); err != nil {
		t.Fatalf("UnlinkProject() error = %v", err)
	}
	got, err := store.Get("acme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !slices.Equal(got.Projects, []string{"api"}) {
		t.Errorf("projects = %q, want [api]", got.Projects)
	}

	if err := store.UnlinkProject("nowhere"); err != nil {
		t.Errorf("UnlinkProject(absent) error = %v, want nil", err)
	}
}

func TestStoreForProject(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Create(Client{ID: "acme", Name: "Acme", Projects: []string{"site"}}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, ok, err := store.ForProject("site")
	if err != nil {
		t.Fatalf("ForProject() error = %v", err)
	}
	if !ok || got.ID != "acme" {
		t.Errorf("ForProject() = (%q, %v), want (acme, true)", got.ID, ok)
	}

	_, ok, err = store.ForProject("orphan")
	if err != nil {
		t.Fatalf("ForProject() error = %v", err)
	}
	if ok {
		t.Error("ForProject(orphan) ok = true, want false")
	}
}

func TestStoreUpcoming(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	seed := []Client{
		{ID: "overdue", Name: "Overdue", NextPayment: "2026-03-01"},
		{ID: "paid", Name: "Paid", NextPayment: "2026-06-01"},
		{ID: "soon", Name: "Soon", NextPayment: "2026-03-20"},
		{ID: "none", Name: "None"},
	}
	for _, c := range seed {
		if err := store.Create(c); err != nil {
			t.Fatalf("Create(%s) error = %v", c.ID, err)
		}
	}

	due, err := store.Upcoming(fixedToday)
	if err != nil {
		t.Fatalf("Upcoming() error = %v", err)
	}
	var ids []string
	for _, c := range due {
		ids = append(ids, c.ID)
	}
	if !slices.Equal(ids, []string{"overdue", "soon"}) {
		t.Errorf("Upcoming() = %q, want [overdue soon] in file order", ids)
	}
}

func TestStoreListPreservesFileOrder(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	for _, id := range []string{"zeta", "alpha", "mid"} {
		if err := store.Create(Client{ID: id, Name: id}); err != nil {
			t.Fatalf("Create(%s) error = %v", id, err)
		}
	}

	clients, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var ids []string
	for _, c := range clients {
		ids = append(ids, c.ID)
	}
	if !slices.Equal(ids, []string{"zeta", "alpha", "mid"}) {
		t.Errorf("List() order = %q, want insertion order", ids)
	}
}

func TestStoreSaveLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "clients.toml"), nil)
	if err := store.Create(Client{ID: "acme", Name: "Acme"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file %q left behind", e.Name())
		}
	}
}

func TestStoreCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "clients.toml")
	if err := os.WriteFile(path, []byte("[[clients]\nbroken"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	store := NewStore(path, nil)
	if _, err := store.List(); err == nil {
		t.Error("List() error = nil, want parse error for corrupt file")
	}
}

func TestStoreWritesClientsTables(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "clients.toml")
	store := NewStore(path, nil)
	if err := store.Create(Client{ID: "acme", Name: "Acme"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "[[clients]]") {
		t.Errorf("file missing [[clients]] table header:\n%s", data)
	}
}

func TestStoreUpcomingEmptyDates(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Create(Client{ID: "none", Name: "None"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	due, err := store.Upcoming(time.Now())
	if err != nil {
		t.Fatalf("Upcoming() error = %v", err)
	}
	if len(due) != 0 {
		t.Errorf("Upcoming() = %d clients, want 0", len(due))
	}
}
