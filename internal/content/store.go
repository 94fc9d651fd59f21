// Package content is the engine's view of the host storage layer: authored
// option payloads, strategy definitions, matching rules, stage defaults,
// coach tags, and persisted classification snapshots.
package content

// #region imports
import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/soend5/coaching-engine/internal/assess"
	"github.com/soend5/coaching-engine/internal/tag"
)

// #endregion

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS option_payloads (
	option_id      TEXT PRIMARY KEY,
	quiz_version   TEXT NOT NULL,
	archetype_vote TEXT NOT NULL,
	dimensions     TEXT NOT NULL,
	tags           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_option_payloads_version
ON option_payloads(quiz_version);

CREATE TABLE IF NOT EXISTS strategy_definitions (
	id          TEXT PRIMARY KEY,
	stage       TEXT NOT NULL,
	name        TEXT NOT NULL,
	summary     TEXT NOT NULL DEFAULT '',
	core_goal   TEXT NOT NULL DEFAULT '',
	recommended TEXT NOT NULL DEFAULT '[]',
	forbidden   TEXT NOT NULL DEFAULT '[]',
	priority    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS matching_rules (
	id            TEXT PRIMARY KEY,
	strategy_id   TEXT NOT NULL,
	stage         TEXT NOT NULL,
	required_tags TEXT NOT NULL DEFAULT '[]',
	excluded_tags TEXT NOT NULL DEFAULT '[]',
	confidence    INTEGER NOT NULL,
	active        INTEGER NOT NULL DEFAULT 1,
	FOREIGN KEY (strategy_id) REFERENCES strategy_definitions(id)
);

CREATE INDEX IF NOT EXISTS idx_matching_rules_stage
ON matching_rules(stage, active);

CREATE TABLE IF NOT EXISTS stage_defaults (
	stage       TEXT PRIMARY KEY,
	strategy_id TEXT NOT NULL,
	FOREIGN KEY (strategy_id) REFERENCES strategy_definitions(id)
);

CREATE TABLE IF NOT EXISTS coach_tags (
	customer_id TEXT NOT NULL,
	tag         TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	PRIMARY KEY (customer_id, tag)
);

CREATE TABLE IF NOT EXISTS classification_snapshots (
	snapshot_id TEXT PRIMARY KEY,
	customer_id TEXT NOT NULL,
	mode        TEXT NOT NULL,
	archetype   TEXT NOT NULL,
	stage       TEXT NOT NULL,
	stability   TEXT,
	dimensions  TEXT,
	tags        TEXT NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_customer
ON classification_snapshots(customer_id, created_at);
`
// #endregion schema

// #region store-struct
// Store wraps the SQLite content database.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}
// #endregion store-struct

// #region constructor
// NewStore opens the content database and runs migrations. A nil logger
// disables store logging.
func NewStore(dbPath string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, log: log}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
// #endregion close

// #region option-payloads

// PutOptionPayload upserts one authored option payload.
func (s *Store) PutOptionPayload(optionID, quizVersion string, p assess.OptionPayload) error {
	dims, err := json.Marshal(p.DimensionDelta)
	if err != nil {
		return fmt.Errorf("marshal dimensions: %w", err)
	}
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO option_payloads (option_id, quiz_version, archetype_vote, dimensions, tags)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(option_id) DO UPDATE SET
		   quiz_version = excluded.quiz_version,
		   archetype_vote = excluded.archetype_vote,
		   dimensions = excluded.dimensions,
		   tags = excluded.tags`,
		optionID, quizVersion, string(p.ArchetypeVote), string(dims), string(tags),
	)
	if err != nil {
		return fmt.Errorf("put option payload %s: %w", optionID, err)
	}
	s.log.Debug("option payload stored", zap.String("option", optionID), zap.String("quiz", quizVersion))
	return nil
}

// OptionPayloads loads every payload belonging to a quiz version, keyed by
// option id. The scoring engine receives this map as its resolution table.
func (s *Store) OptionPayloads(quizVersion string) (map[string]assess.OptionPayload, error) {
	rows, err := s.db.Query(
		`SELECT option_id, archetype_vote, dimensions, tags
		 FROM option_payloads WHERE quiz_version = ?`, quizVersion,
	)
	if err != nil {
		return nil, fmt.Errorf("query option payloads: %w", err)
	}
	defer rows.Close()

	out := make(map[string]assess.OptionPayload)
	for rows.Next() {
		var id, vote, dims, tags string
		if err := rows.Scan(&id, &vote, &dims, &tags); err != nil {
			return nil, fmt.Errorf("scan option payload: %w", err)
		}
		var p assess.OptionPayload
		p.ArchetypeVote = tag.Archetype(vote)
		if err := json.Unmarshal([]byte(dims), &p.DimensionDelta); err != nil {
			return nil, fmt.Errorf("unmarshal dimensions for %s: %w", id, err)
		}
		if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags for %s: %w", id, err)
		}
		out[id] = p
	}
	return out, rows.Err()
}

// #endregion option-payloads

// #region strategies

// UpsertStrategy writes one strategy definition.
func (s *Store) UpsertStrategy(def assess.StrategyDefinition) error {
	rec, err := json.Marshal(def.Recommended)
	if err != nil {
		return fmt.Errorf("marshal recommended: %w", err)
	}
	forb, err := json.Marshal(def.Forbidden)
	if err != nil {
		return fmt.Errorf("marshal forbidden: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO strategy_definitions (id, stage, name, summary, core_goal, recommended, forbidden, priority)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   stage = excluded.stage,
		   name = excluded.name,
		   summary = excluded.summary,
		   core_goal = excluded.core_goal,
		   recommended = excluded.recommended,
		   forbidden = excluded.forbidden,
		   priority = excluded.priority`,
		def.ID, string(def.Stage), def.Name, def.Summary, def.CoreGoal,
		string(rec), string(forb), def.Priority,
	)
	if err != nil {
		return fmt.Errorf("upsert strategy %s: %w", def.ID, err)
	}
	return nil
}

// Strategy loads one definition by id.
func (s *Store) Strategy(id string) (assess.StrategyDefinition, error) {
	row := s.db.QueryRow(
		`SELECT id, stage, name, summary, core_goal, recommended, forbidden, priority
		 FROM strategy_definitions WHERE id = ?`, id,
	)
	def, err := scanStrategy(row)
	if err != nil {
		return assess.StrategyDefinition{}, fmt.Errorf("get strategy %s: %w", id, err)
	}
	return def, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStrategy(r rowScanner) (assess.StrategyDefinition, error) {
	var def assess.StrategyDefinition
	var stage, rec, forb string
	if err := r.Scan(&def.ID, &stage, &def.Name, &def.Summary, &def.CoreGoal, &rec, &forb, &def.Priority); err != nil {
		return assess.StrategyDefinition{}, err
	}
	def.Stage = assess.Stage(stage)
	if err := json.Unmarshal([]byte(rec), &def.Recommended); err != nil {
		return assess.StrategyDefinition{}, fmt.Errorf("unmarshal recommended: %w", err)
	}
	if err := json.Unmarshal([]byte(forb), &def.Forbidden); err != nil {
		return assess.StrategyDefinition{}, fmt.Errorf("unmarshal forbidden: %w", err)
	}
	return def, nil
}

// #endregion strategies

// #region rules

// UpsertRule writes one matching rule.
func (s *Store) UpsertRule(rule assess.MatchingRule) error {
	req, err := json.Marshal(rule.RequiredTags)
	if err != nil {
		return fmt.Errorf("marshal required tags: %w", err)
	}
	exc, err := json.Marshal(rule.ExcludedTags)
	if err != nil {
		return fmt.Errorf("marshal excluded tags: %w", err)
	}
	active := 0
	if rule.Active {
		active = 1
	}
	_, err = s.db.Exec(
		`INSERT INTO matching_rules (id, strategy_id, stage, required_tags, excluded_tags, confidence, active)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   strategy_id = excluded.strategy_id,
		   stage = excluded.stage,
		   required_tags = excluded.required_tags,
		   excluded_tags = excluded.excluded_tags,
		   confidence = excluded.confidence,
		   active = excluded.active`,
		rule.ID, rule.StrategyID, string(rule.Stage), string(req), string(exc), rule.Confidence, active,
	)
	if err != nil {
		return fmt.Errorf("upsert rule %s: %w", rule.ID, err)
	}
	return nil
}

// ActiveRuleRows returns the active rules for a stage joined with their
// owning definitions, in one query so the matcher sees a consistent
// snapshot of the rule table.
func (s *Store) ActiveRuleRows(stage assess.Stage) ([]assess.RuleRow, error) {
	rows, err := s.db.Query(
		`SELECT r.id, r.strategy_id, r.stage, r.required_tags, r.excluded_tags, r.confidence, r.active,
		        d.id, d.stage, d.name, d.summary, d.core_goal, d.recommended, d.forbidden, d.priority
		 FROM matching_rules r
		 JOIN strategy_definitions d ON d.id = r.strategy_id
		 WHERE r.stage = ? AND r.active = 1
		 ORDER BY r.id`, string(stage),
	)
	if err != nil {
		return nil, fmt.Errorf("query rules for %s: %w", stage, err)
	}
	defer rows.Close()

	var out []assess.RuleRow
	for rows.Next() {
		var rr assess.RuleRow
		var rStage, req, exc string
		var active int
		var dStage, dRec, dForb string
		err := rows.Scan(
			&rr.Rule.ID, &rr.Rule.StrategyID, &rStage, &req, &exc, &rr.Rule.Confidence, &active,
			&rr.Definition.ID, &dStage, &rr.Definition.Name, &rr.Definition.Summary,
			&rr.Definition.CoreGoal, &dRec, &dForb, &rr.Definition.Priority,
		)
		if err != nil {
			return nil, fmt.Errorf("scan rule row: %w", err)
		}
		rr.Rule.Stage = assess.Stage(rStage)
		rr.Rule.Active = active == 1
		rr.Definition.Stage = assess.Stage(dStage)
		if err := json.Unmarshal([]byte(req), &rr.Rule.RequiredTags); err != nil {
			return nil, fmt.Errorf("unmarshal required tags for %s: %w", rr.Rule.ID, err)
		}
		if err := json.Unmarshal([]byte(exc), &rr.Rule.ExcludedTags); err != nil {
			return nil, fmt.Errorf("unmarshal excluded tags for %s: %w", rr.Rule.ID, err)
		}
		if err := json.Unmarshal([]byte(dRec), &rr.Definition.Recommended); err != nil {
			return nil, fmt.Errorf("unmarshal recommended for %s: %w", rr.Definition.ID, err)
		}
		if err := json.Unmarshal([]byte(dForb), &rr.Definition.Forbidden); err != nil {
			return nil, fmt.Errorf("unmarshal forbidden for %s: %w", rr.Definition.ID, err)
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

// #endregion rules

// #region stage-defaults

// SetStageDefault points a stage at its fallback strategy.
func (s *Store) SetStageDefault(stage assess.Stage, strategyID string) error {
	_, err := s.db.Exec(
		`INSERT INTO stage_defaults (stage, strategy_id) VALUES (?, ?)
		 ON CONFLICT(stage) DO UPDATE SET strategy_id = excluded.strategy_id`,
		string(stage), strategyID,
	)
	if err != nil {
		return fmt.Errorf("set stage default %s: %w", stage, err)
	}
	return nil
}

// StageDefault loads the fallback definition for a stage. Returns nil with
// no error when the stage has none; the matcher turns that into its hard
// failure.
func (s *Store) StageDefault(stage assess.Stage) (*assess.StrategyDefinition, error) {
	var strategyID string
	err := s.db.QueryRow(
		`SELECT strategy_id FROM stage_defaults WHERE stage = ?`, string(stage),
	).Scan(&strategyID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stage default %s: %w", stage, err)
	}
	def, err := s.Strategy(strategyID)
	if err != nil {
		return nil, err
	}
	return &def, nil
}

// #endregion stage-defaults

// #region coach-tags

// AddCoachTag attaches a coach-authored tag to a customer. Re-adding an
// existing tag is a no-op.
func (s *Store) AddCoachTag(customerID, t string) error {
	_, err := s.db.Exec(
		`INSERT INTO coach_tags (customer_id, tag, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(customer_id, tag) DO NOTHING`,
		customerID, t, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("add coach tag: %w", err)
	}
	return nil
}

// CoachTags lists a customer's coach tags in insertion order.
func (s *Store) CoachTags(customerID string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT tag FROM coach_tags WHERE customer_id = ? ORDER BY created_at, tag`, customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query coach tags: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan coach tag: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// #endregion coach-tags

// #region snapshots

// SaveSnapshot persists a classification result for a customer. Missing id
// and timestamp are filled in.
func (s *Store) SaveSnapshot(snap Snapshot) (Snapshot, error) {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	var dims any
	if len(snap.DimensionScores) > 0 {
		b, err := json.Marshal(snap.DimensionScores)
		if err != nil {
			return Snapshot{}, fmt.Errorf("marshal dimension scores: %w", err)
		}
		dims = string(b)
	}
	tags, err := json.Marshal(snap.Tags)
	if err != nil {
		return Snapshot{}, fmt.Errorf("marshal tags: %w", err)
	}

	var stability any
	if snap.Stability != "" {
		stability = string(snap.Stability)
	}

	_, err = s.db.Exec(
		`INSERT INTO classification_snapshots
		 (snapshot_id, customer_id, mode, archetype, stage, stability, dimensions, tags, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.CustomerID, string(snap.Mode), string(snap.Archetype),
		string(snap.Stage), stability, dims, string(tags),
		snap.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("save snapshot: %w", err)
	}
	s.log.Debug("snapshot saved",
		zap.String("snapshot", snap.ID),
		zap.String("customer", snap.CustomerID),
		zap.String("archetype", string(snap.Archetype)))
	return snap, nil
}

// Snapshots lists a customer's classification history, newest first.
func (s *Store) Snapshots(customerID string, limit int) ([]Snapshot, error) {
	rows, err := s.db.Query(
		`SELECT snapshot_id, customer_id, mode, archetype, stage, stability, dimensions, tags, created_at
		 FROM classification_snapshots
		 WHERE customer_id = ?
		 ORDER BY created_at DESC LIMIT ?`, customerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var mode, archetype, stage, createdStr, tags string
		var stability, dims sql.NullString
		err := rows.Scan(&snap.ID, &snap.CustomerID, &mode, &archetype, &stage,
			&stability, &dims, &tags, &createdStr)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.Mode = assess.Mode(mode)
		snap.Archetype = tag.Archetype(archetype)
		snap.Stage = assess.Stage(stage)
		if stability.Valid {
			snap.Stability = tag.Level(stability.String)
		}
		if dims.Valid {
			if err := json.Unmarshal([]byte(dims.String), &snap.DimensionScores); err != nil {
				return nil, fmt.Errorf("unmarshal dimension scores: %w", err)
			}
		}
		if err := json.Unmarshal([]byte(tags), &snap.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
		snap.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, snap)
	}
	return out, rows.Err()
}

// #endregion snapshots
