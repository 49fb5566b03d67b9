package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chimekit/chime/common"
	_ "modernc.org/sqlite"
)

const alarmSchema = `
CREATE TABLE IF NOT EXISTS alarms (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	time         TEXT NOT NULL,
	repeat_days  TEXT,
	cron_expr    TEXT,
	sound        TEXT NOT NULL,
	volume       REAL NOT NULL,
	enabled      INTEGER NOT NULL DEFAULT 1,
	state        TEXT NOT NULL,
	next_fire_at INTEGER,
	snooze_until INTEGER,
	created_at   INTEGER NOT NULL
)`

const alarmColumns = `id, name, time, repeat_days, cron_expr, sound, volume,
	enabled, state, next_fire_at, snooze_until, created_at`

// SQLiteAlarmStore persists alarms in a local sqlite database. Writes are
// committed before the call returns; synchronous FULL keeps the durability
// guarantee the alarm subsystem is built on.
type SQLiteAlarmStore struct {
	db *sql.DB
}

// OpenAlarmStore opens (creating if needed) the alarm database at path.
func OpenAlarmStore(path string) (*SQLiteAlarmStore, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)",
		path,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open alarm database: %w", err)
	}
	if _, err := db.Exec(alarmSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create alarms table: %w", err)
	}
	return &SQLiteAlarmStore{db: db}, nil
}

var _ AlarmStore = (*SQLiteAlarmStore)(nil)

func (s *SQLiteAlarmStore) Create(a *common.Alarm) error {
	repeat, err := encodeRepeatDays(a.RepeatDays)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO alarms (`+alarmColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		a.ID, a.Name, a.TimeOfDay, repeat, nullString(a.CronExpr),
		a.Sound, a.Volume, boolToInt(a.Enabled), string(a.State),
		nullUnix(a.NextFireAt), nullUnix(a.SnoozeUntil), a.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert alarm %s: %w", a.ID, err)
	}
	return nil
}

func (s *SQLiteAlarmStore) Get(id string) (*common.Alarm, error) {
	row := s.db.QueryRow(`SELECT `+alarmColumns+` FROM alarms WHERE id = ?`, id)
	a, err := scanAlarm(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return a, err
}

func (s *SQLiteAlarmStore) List() ([]*common.Alarm, error) {
	rows, err := s.db.Query(
		`SELECT ` + alarmColumns + ` FROM alarms
		 ORDER BY (next_fire_at IS NULL), next_fire_at ASC, created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}
	defer rows.Close()

	var alarms []*common.Alarm
	for rows.Next() {
		a, err := scanAlarm(rows)
		if err != nil {
			return nil, err
		}
		alarms = append(alarms, a)
	}
	return alarms, rows.Err()
}

func (s *SQLiteAlarmStore) Update(a *common.Alarm) error {
	repeat, err := encodeRepeatDays(a.RepeatDays)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(
		`UPDATE alarms SET name=?, time=?, repeat_days=?, cron_expr=?, sound=?,
		 volume=?, enabled=?, state=?, next_fire_at=?, snooze_until=? WHERE id=?`,
		a.Name, a.TimeOfDay, repeat, nullString(a.CronExpr), a.Sound,
		a.Volume, boolToInt(a.Enabled), string(a.State),
		nullUnix(a.NextFireAt), nullUnix(a.SnoozeUntil), a.ID,
	)
	if err != nil {
		return fmt.Errorf("update alarm %s: %w", a.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteAlarmStore) Delete(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM alarms WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete alarm %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *SQLiteAlarmStore) DeleteMatching(pred func(*common.Alarm) bool) ([]*common.Alarm, error) {
	alarms, err := s.List()
	if err != nil {
		return nil, err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var deleted []*common.Alarm
	for _, a := range alarms {
		if !pred(a) {
			continue
		}
		if _, err := tx.Exec(`DELETE FROM alarms WHERE id = ?`, a.ID); err != nil {
			return nil, fmt.Errorf("delete alarm %s: %w", a.ID, err)
		}
		deleted = append(deleted, a)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *SQLiteAlarmStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlarm(row rowScanner) (*common.Alarm, error) {
	var (
		a          common.Alarm
		repeat     sql.NullString
		cron       sql.NullString
		enabled    int
		state      string
		nextFireAt sql.NullInt64
		snooze     sql.NullInt64
		createdAt  int64
	)
	err := row.Scan(
		&a.ID, &a.Name, &a.TimeOfDay, &repeat, &cron, &a.Sound, &a.Volume,
		&enabled, &state, &nextFireAt, &snooze, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	if repeat.Valid && repeat.String != "" {
		if err := json.Unmarshal([]byte(repeat.String), &a.RepeatDays); err != nil {
			return nil, fmt.Errorf("decode repeat days for %s: %w", a.ID, err)
		}
	}
	a.CronExpr = cron.String
	a.Enabled = enabled != 0
	a.State = common.AlarmState(state)
	a.NextFireAt = unixOrZero(nextFireAt)
	a.SnoozeUntil = unixOrZero(snooze)
	a.CreatedAt = time.Unix(createdAt, 0).Local()
	return &a, nil
}

func encodeRepeatDays(days []string) (sql.NullString, error) {
	if len(days) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(days)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode repeat days: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func unixOrZero(v sql.NullInt64) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	return time.Unix(v.Int64, 0).Local()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
