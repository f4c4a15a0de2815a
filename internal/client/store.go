package client

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no client has the requested id.
	ErrNotFound = errors.New("client: not found")

	// ErrDuplicateID is returned by Create when the slug is already taken.
	ErrDuplicateID = errors.New("client: duplicate id")

	// ErrInvalidClient is returned when a record is missing its id or name.
	ErrInvalidClient = errors.New("client: id and name are required")
)

// document is the on-disk shape: a single array of client tables.
type document struct {
	Clients []Client `toml:"clients"`
}

// Store provides CRUD over the clients file. It holds no in-memory state:
// every operation reloads the file, and every mutation rewrites it
// atomically. The store is the sole writer; concurrent external edits are
// last-writer-wins.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a Store backed by the TOML file at path. The file need
// not exist yet; a missing file reads as an empty store. logger may be nil
// to discard logs.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{path: filepath.Clean(path), logger: logger}
}

// List returns every client in file order.
func (s *Store) List() ([]Client, error) {
	return s.load()
}

// Get returns the client with the given id, or ErrNotFound.
func (s *Store) Get(id string) (Client, error) {
	clients, err := s.load()
	if err != nil {
		return Client{}, err
	}
	for _, c := range clients {
		if c.ID == id {
			return c, nil
		}
	}
	return Client{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
}

// Create appends a new client. It fails with ErrDuplicateID when the slug
// is already present and ErrInvalidClient when id or name is empty; the
// store is left unmodified on failure. Billing cycle and currency default
// to annual and CAD when empty.
func (s *Store) Create(c Client) error {
	if c.ID == "" || c.Name == "" {
		return ErrInvalidClient
	}
	clients, err := s.load()
	if err != nil {
		return err
	}
	for _, existing := range clients {
		if existing.ID == c.ID {
			return fmt.Errorf("create %q: %w", c.ID, ErrDuplicateID)
		}
	}
	if err := s.save(append(clients, withDefaults(c))); err != nil {
		return err
	}
	s.logger.Debug("client created", "id", c.ID)
	return nil
}

// Update replaces the record whose id matches. A missing id is an
// ErrNotFound, not a silent no-op, so a stale edit cannot vanish.
func (s *Store) Update(c Client) error {
	if c.ID == "" || c.Name == "" {
		return ErrInvalidClient
	}
	clients, err := s.load()
	if err != nil {
		return err
	}
	for i := range clients {
		if clients[i].ID == c.ID {
			clients[i] = withDefaults(c)
			return s.save(clients)
		}
	}
	return fmt.Errorf("update %q: %w", c.ID, ErrNotFound)
}

// Delete removes the client with the given id. Deleting an absent id is a
// no-op: deletion is idempotent.
func (s *Store) Delete(id string) error {
	clients, err := s.load()
	if err != nil {
		return err
	}
	remaining := slices.DeleteFunc(clients, func(c Client) bool {
		return c.ID == id
	})
	if len(remaining) == len(clients) {
		return nil
	}
	if err := s.save(remaining); err != nil {
		return err
	}
	s.logger.Debug("client deleted", "id", id)
	return nil
}

// LinkProject attaches a project to the client with the given id, first
// detaching it from every other client so the project belongs to at most
// one. Linking to the same client again is a no-op. The target client must
// exist; the store is unmodified when it does not.
func (s *Store) LinkProject(project, clientID string) error {
	clients, err := s.load()
	if err != nil {
		return err
	}
	target := -1
	for i := range clients {
		if clients[i].ID == clientID {
			target = i
			break
		}
	}
	if target < 0 {
		return fmt.Errorf("link %q to %q: %w", project, clientID, ErrNotFound)
	}
	for i := range clients {
		clients[i].Projects = slices.DeleteFunc(clients[i].Projects, func(p string) bool {
			return p == project
		})
	}
	clients[target].Projects = append(clients[target].Projects, project)
	return s.save(clients)
}

// UnlinkProject detaches a project from whichever client holds it. A
// project linked nowhere is a no-op.
func (s *Store) UnlinkProject(project string) error {
	clients, err := s.load()
	if err != nil {
		return err
	}
	changed := false
	for i := range clients {
		if !slices.Contains(clients[i].Projects, project) {
			continue
		}
		clients[i].Projects = slices.DeleteFunc(clients[i].Projects, func(p string) bool {
			return p == project
		})
		changed = true
	}
	if !changed {
		return nil
	}
	return s.save(clients)
}

// ForProject returns the client holding the given project name, with
// ok=false when no client does.
func (s *Store) ForProject(project string) (Client, bool, error) {
	clients, err := s.load()
	if err != nil {
		return Client{}, false, err
	}
	for _, c := range clients {
		if slices.Contains(c.Projects, project) {
			return c, true, nil
		}
	}
	return Client{}, false, nil
}

// Upcoming returns the clients whose next payment is due soon or overdue
// as of today, in file order.
func (s *Store) Upcoming(today time.Time) ([]Client, error) {
	clients, err := s.load()
	if err != nil {
		return nil, err
	}
	var due []Client
	for _, c := range clients {
		switch c.PaymentStatus(today) {
		case StateDueSoon, StateOverdue:
			due = append(due, c)
		}
	}
	return due, nil
}

// withDefaults fills the conventional field defaults on a stored record.
func withDefaults(c Client) Client {
	if c.BillingCycle == "" {
		c.BillingCycle = CycleAnnual
	}
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	return c
}

// load reads the whole backing file. A missing file is an empty store.
func (s *Store) load() ([]Client, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read clients file %s: %w", s.path, err)
	}
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse clients file %s: %w", s.path, err)
	}
	return doc.Clients, nil
}

// save rewrites the whole backing file atomically, creating the parent
// directory on first use.
func (s *Store) save(clients []Client) error {
	data, err := toml.Marshal(document{Clients: clients})
	if err != nil {
		return fmt.Errorf("marshal clients: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create clients directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".hawk-clients-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpName, s.path)
}
