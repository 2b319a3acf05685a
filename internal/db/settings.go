package db

import "context"

// Settings is the singleton event lifecycle record (row id = 1).
type Settings struct {
	RegistrationOpen bool `json:"registration_open"`
	EventStarted     bool `json:"event_started"`
}

func (db *DB) Settings(ctx context.Context) (Settings, error) {
	var s Settings
	err := db.pool.QueryRow(ctx,
		`SELECT registration_open, event_started FROM event_settings WHERE id = 1`,
	).Scan(&s.RegistrationOpen, &s.EventStarted)
	return s, err
}

func (db *DB) SetRegistrationOpen(ctx context.Context, open bool) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE event_settings SET registration_open = $1 WHERE id = 1`, open)
	return err
}

// SetEventStarted is only ever flipped to true by an assignment run;
// re-running assignment leaves it true.
func (db *DB) SetEventStarted(ctx context.Context, started bool) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE event_settings SET event_started = $1 WHERE id = 1`, started)
	return err
}
