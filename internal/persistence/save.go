package persistence

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/config"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/engine"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/entropy"
)

// SchemaVersion is the version written by this build.
const SchemaVersion = 2

// ErrUnsupportedVersion is returned for saves written by a newer build.
var ErrUnsupportedVersion = errors.New("unsupported save version")

// legacySeed is assigned to version 1 saves, which predate seeding.
const legacySeed = 42

//go:embed schema/save.schema.json
var saveSchemaJSON string

var saveSchema = jsonschema.MustCompileString("save.schema.json", saveSchemaJSON)

// Document is the envelope around a saved game.
type Document struct {
	SchemaVersion int             `json:"schema_version"`
	RunID         string          `json:"run_id"`
	SavedAt       time.Time       `json:"saved_at"`
	Game          json.RawMessage `json:"game"`
}

// migration upgrades a decoded game document from one version to the next.
type migration func(doc map[string]any) error

var migrations = map[int]migration{
	1: migrateV1,
}

// migrateV1 fills the fields version 1 did not have.
func migrateV1(doc map[string]any) error {
	if v, ok := doc["pending_events"]; !ok || v == nil {
		doc["pending_events"] = []any{}
	}
	if _, ok := doc["seed"]; !ok {
		doc["seed"] = legacySeed
	}
	if _, ok := doc["tutorial_complete"]; !ok {
		doc["tutorial_complete"] = false
	}
	return nil
}

// Encode wraps g in a current-version document.
func Encode(g *engine.Game, runID string) ([]byte, error) {
	body, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("marshal game: %w", err)
	}
	return json.Marshal(Document{
		SchemaVersion: SchemaVersion,
		RunID:         runID,
		SavedAt:       time.Now().UTC(),
		Game:          body,
	})
}

// Decode reads a document, upgrading and validating it, and binds the
// resulting game to bal and src. A nil src reseeds from the save.
func Decode(raw []byte, bal config.Balance, src entropy.Source) (*engine.Game, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return decodeGame(doc.SchemaVersion, doc.Game, bal, src)
}

func decodeGame(version int, body []byte, bal config.Balance, src entropy.Source) (*engine.Game, error) {
	if version > SchemaVersion {
		return nil, fmt.Errorf("%w: %d (this build reads up to %d)", ErrUnsupportedVersion, version, SchemaVersion)
	}
	if version < 1 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	var tree map[string]any
	if err := json.Unmarshal(body, &tree); err != nil {
		return nil, fmt.Errorf("decode game: %w", err)
	}
	for v := version; v < SchemaVersion; v++ {
		m, ok := migrations[v]
		if !ok {
			return nil, fmt.Errorf("no migration from version %d", v)
		}
		if err := m(tree); err != nil {
			return nil, fmt.Errorf("migrate v%d: %w", v, err)
		}
		slog.Info("save migrated", "from", v, "to", v+1)
	}
	if err := saveSchema.Validate(tree); err != nil {
		return nil, fmt.Errorf("validate save: %w", err)
	}

	upgraded, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("re-encode game: %w", err)
	}
	var g engine.Game
	if err := json.Unmarshal(upgraded, &g); err != nil {
		return nil, fmt.Errorf("decode game: %w", err)
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	g.Bind(bal, src)
	return &g, nil
}

// Store saves games into slots and journals what happens in them.
type Store struct {
	db      *DB
	runID   string
	gameID  string
	lastSeq int
}

// NewStore creates a store over db. Each store gets a fresh run id that
// tags its journal entries.
func NewStore(db *DB) *Store {
	return &Store{db: db, runID: uuid.NewString()}
}

// RunID returns the id tagging this store's journal entries.
func (s *Store) RunID() string {
	return s.runID
}

// Save writes g into slot.
func (s *Store) Save(slot string, g *engine.Game) error {
	body, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal game: %w", err)
	}
	if err := s.db.PutSave(slot, SchemaVersion, body); err != nil {
		return err
	}
	slog.Info("game saved", "slot", slot, "day", g.Day, "phase", g.Phase)
	return nil
}

// Load reads the game in slot.
func (s *Store) Load(slot string, bal config.Balance, src entropy.Source) (*engine.Game, error) {
	row, err := s.db.GetSave(slot)
	if err != nil {
		return nil, err
	}
	g, err := decodeGame(row.SchemaVersion, []byte(row.Body), bal, src)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", slot, err)
	}
	s.gameID, s.lastSeq = g.ID, 0
	return g, nil
}

// Journal appends g's log entries not yet journaled. Entries written by
// another process for the same game are skipped by the database.
func (s *Store) Journal(g *engine.Game) error {
	if g.ID != s.gameID {
		s.gameID, s.lastSeq = g.ID, 0
	}
	rows := make([]JournalEntry, 0, len(g.Log))
	last := s.lastSeq
	for _, e := range g.Log {
		if e.Seq <= s.lastSeq {
			continue
		}
		last = max(last, e.Seq)
		rows = append(rows, JournalEntry{
			RunID:       s.runID,
			GameID:      g.ID,
			Seq:         e.Seq,
			Day:         e.Day,
			Phase:       string(e.Phase),
			Category:    e.Category,
			Description: e.Description,
		})
	}
	if err := s.db.AppendJournal(rows); err != nil {
		return err
	}
	s.lastSeq = last
	return nil
}
