package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Participant struct {
	ID           int64  `json:"id"`
	TelegramID   int64  `json:"telegram_id"`
	FullName     string `json:"full_name"`
	GroupName    string `json:"group_name"`
	Preferences  string `json:"preferences"`
	RecipientID  *int64 `json:"recipient_id"`
	GiftGiven    bool   `json:"gift_given"`
	GiftReceived bool   `json:"gift_received"`
}

type EventStats struct {
	Total     int `json:"total"`
	Delivered int `json:"delivered"`
	Received  int `json:"received"`
}

const participantColumns = `id, telegram_id, full_name, group_name, preferences, recipient_id, gift_given, gift_received`

func scanParticipant(row pgx.Row) (*Participant, error) {
	var p Participant
	err := row.Scan(&p.ID, &p.TelegramID, &p.FullName, &p.GroupName, &p.Preferences,
		&p.RecipientID, &p.GiftGiven, &p.GiftReceived)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CreateParticipant inserts a completed registration and returns the assigned id.
// A second registration for the same telegram id returns ErrAlreadyRegistered.
func (db *DB) CreateParticipant(ctx context.Context, telegramID int64, fullName, groupName, preferences string) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO participants (telegram_id, full_name, group_name, preferences)
         VALUES ($1, $2, $3, $4)
         RETURNING id`,
		telegramID, fullName, groupName, preferences,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrAlreadyRegistered
		}
		return 0, err
	}
	return id, nil
}

func (db *DB) ParticipantByTelegramID(ctx context.Context, telegramID int64) (*Participant, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE telegram_id = $1`, telegramID)
	return scanParticipant(row)
}

func (db *DB) ParticipantByID(ctx context.Context, id int64) (*Participant, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE id = $1`, id)
	return scanParticipant(row)
}

// ListParticipants returns all participants ordered by id.
func (db *DB) ListParticipants(ctx context.Context) ([]Participant, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+participantColumns+` FROM participants ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Participant
	for rows.Next() {
		var p Participant
		if err := rows.Scan(&p.ID, &p.TelegramID, &p.FullName, &p.GroupName, &p.Preferences,
			&p.RecipientID, &p.GiftGiven, &p.GiftReceived); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteParticipant removes a participant and returns the deleted row
// so the caller can echo back who was removed.
func (db *DB) DeleteParticipant(ctx context.Context, id int64) (*Participant, error) {
	row := db.pool.QueryRow(ctx,
		`DELETE FROM participants WHERE id = $1 RETURNING `+participantColumns, id)
	return scanParticipant(row)
}

func (db *DB) SetRecipient(ctx context.Context, giverID, receiverID int64) error {
	ct, err := db.pool.Exec(ctx,
		`UPDATE participants SET recipient_id = $2 WHERE id = $1`, giverID, receiverID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) MarkGiftGiven(ctx context.Context, id int64) error {
	ct, err := db.pool.Exec(ctx,
		`UPDATE participants SET gift_given = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) MarkGiftReceived(ctx context.Context, id int64) error {
	ct, err := db.pool.Exec(ctx,
		`UPDATE participants SET gift_received = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats returns participant counts for the organizer overview.
func (db *DB) Stats(ctx context.Context) (EventStats, error) {
	var s EventStats
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE gift_given),
		        COUNT(*) FILTER (WHERE gift_received)
		 FROM participants`,
	).Scan(&s.Total, &s.Delivered, &s.Received)
	return s, err
}
