// Package persistence provides SQLite-based storage of simulation runs and their cycles.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/crisissim/internal/economy"
	"github.com/talgya/crisissim/internal/engine"
)

// DB wraps a SQLite connection for run history.
type DB struct {
	conn *sqlx.DB
}

// Run is one interactive session.
type Run struct {
	ID              string    `db:"id"`
	StartedAt       time.Time `db:"-"`
	StartedUnix     int64     `db:"started_at"`
	Seed            int64     `db:"seed"`
	Source          string    `db:"source"`
	TotalPopulation int64     `db:"total_population"`
	Periods         int       `db:"periods"`
	Cycles          int       `db:"cycles"`
}

type cycleRow struct {
	Seq            int    `db:"seq"`
	Crisis         string `db:"crisis"`
	Policy         string `db:"policy"`
	MonthsPassed   int    `db:"months_passed"`
	Classification string `db:"classification"`
	OutcomeJSON    string `db:"outcome_json"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		source TEXT NOT NULL,
		total_population INTEGER NOT NULL,
		periods INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cycles (
		run_id TEXT NOT NULL REFERENCES runs(id),
		seq INTEGER NOT NULL,
		crisis TEXT NOT NULL,
		policy TEXT NOT NULL,
		months_passed INTEGER NOT NULL,
		classification TEXT NOT NULL,
		outcome_json TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// CreateRun registers a new run and returns it with a fresh ID.
func (db *DB) CreateRun(seed int64, source string, totalPopulation int64, periods int) (Run, error) {
	run := Run{
		ID:              uuid.NewString(),
		StartedAt:       time.Now().UTC().Truncate(time.Second),
		Seed:            seed,
		Source:          source,
		TotalPopulation: totalPopulation,
		Periods:         periods,
	}
	run.StartedUnix = run.StartedAt.Unix()

	_, err := db.conn.NamedExec(`INSERT INTO runs
		(id, started_at, seed, source, total_population, periods)
		VALUES (:id, :started_at, :seed, :source, :total_population, :periods)`, run)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	slog.Debug("run created", "run_id", run.ID)
	return run, nil
}

// SaveCycle stores one cycle of a run. seq is 1-based.
func (db *DB) SaveCycle(runID string, seq int, rec engine.CycleRecord) error {
	outcomeJSON, err := json.Marshal(outcomeMap(rec.Outcome))
	if err != nil {
		return fmt.Errorf("marshal outcome: %w", err)
	}

	_, err = db.conn.Exec(`INSERT INTO cycles
		(run_id, seq, crisis, policy, months_passed, classification, outcome_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, seq, rec.Crisis, rec.Policy, rec.MonthsPassed,
		rec.FinalState.String(), string(outcomeJSON),
	)
	if err != nil {
		return fmt.Errorf("insert cycle %d: %w", seq, err)
	}
	return nil
}

// Runs returns the most recent runs, newest first, with their cycle counts.
func (db *DB) Runs(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs, `
		SELECT r.id, r.started_at, r.seed, r.source, r.total_population, r.periods,
		       COUNT(c.seq) AS cycles
		FROM runs r
		LEFT JOIN cycles c ON c.run_id = r.id
		GROUP BY r.id
		ORDER BY r.started_at DESC, r.rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	for i := range runs {
		runs[i].StartedAt = time.Unix(runs[i].StartedUnix, 0).UTC()
	}
	return runs, nil
}

// GetRun looks up a run by ID.
func (db *DB) GetRun(id string) (Run, error) {
	var run Run
	err := db.conn.Get(&run, `
		SELECT r.id, r.started_at, r.seed, r.source, r.total_population, r.periods,
		       (SELECT COUNT(*) FROM cycles c WHERE c.run_id = r.id) AS cycles
		FROM runs r WHERE r.id = ?`, id)
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	run.StartedAt = time.Unix(run.StartedUnix, 0).UTC()
	return run, nil
}

// Cycles returns a run's cycles in order.
func (db *DB) Cycles(runID string) ([]engine.CycleRecord, error) {
	var rows []cycleRow
	err := db.conn.Select(&rows, `
		SELECT seq, crisis, policy, months_passed, classification, outcome_json
		FROM cycles WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}

	recs := make([]engine.CycleRecord, 0, len(rows))
	for _, row := range rows {
		final, err := engine.ParseClassification(row.Classification)
		if err != nil {
			return nil, fmt.Errorf("cycle %d: %w", row.Seq, err)
		}

		var outcome map[string]engine.GroupChange
		if err := json.Unmarshal([]byte(row.OutcomeJSON), &outcome); err != nil {
			return nil, fmt.Errorf("cycle %d outcome: %w", row.Seq, err)
		}

		rec := engine.CycleRecord{
			Crisis:       row.Crisis,
			Policy:       row.Policy,
			MonthsPassed: row.MonthsPassed,
			FinalState:   final,
		}
		for id, ch := range outcome {
			if g, ok := economy.ParseGroup(id); ok {
				rec.Outcome[g] = ch
			}
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// outcomeMap keys changes by group identifier so stored rows stay readable.
func outcomeMap(changes [economy.NumGroups]engine.GroupChange) map[string]engine.GroupChange {
	m := make(map[string]engine.GroupChange, len(changes))
	for _, g := range economy.Groups() {
		m[g.String()] = changes[g]
	}
	return m
}

// RunRecorder stores cycles for a single run. It implements engine.Recorder.
type RunRecorder struct {
	DB    *DB
	RunID string
}

func (r RunRecorder) RecordCycle(seq int, rec engine.CycleRecord) error {
	return r.DB.SaveCycle(r.RunID, seq, rec)
}
