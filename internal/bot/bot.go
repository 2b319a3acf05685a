package bot

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/krezhov/santabot/internal/config"
	"github.com/krezhov/santabot/internal/db"
	"github.com/krezhov/santabot/internal/santa"
	"github.com/krezhov/santabot/internal/session"
	"github.com/krezhov/santabot/internal/telegram"
)

const (
	pollInterval  = time.Second
	errorBackoff  = 5 * time.Second
	maxEmptyPolls = 10
)

// Transport is the messaging surface the bot consumes: long-poll in,
// best-effort send out.
type Transport interface {
	GetUpdates(ctx context.Context, offset int64) ([]telegram.Update, error)
	SendMessage(ctx context.Context, chatID int64, text string) bool
}

// Store is the slice of the record store the bot needs. *db.DB satisfies it.
type Store interface {
	CreateParticipant(ctx context.Context, telegramID int64, fullName, groupName, preferences string) (int64, error)
	ParticipantByTelegramID(ctx context.Context, telegramID int64) (*db.Participant, error)
	ParticipantByID(ctx context.Context, id int64) (*db.Participant, error)
	ListParticipants(ctx context.Context) ([]db.Participant, error)
	DeleteParticipant(ctx context.Context, id int64) (*db.Participant, error)
	MarkGiftGiven(ctx context.Context, id int64) error
	MarkGiftReceived(ctx context.Context, id int64) error
	Stats(ctx context.Context) (db.EventStats, error)
	Settings(ctx context.Context) (db.Settings, error)
	SetRegistrationOpen(ctx context.Context, open bool) error
}

type Bot struct {
	transport   Transport
	store       Store
	engine      *santa.Service
	sessions    *session.Store
	organizers  map[int64]bool
	dropOffNote string

	// Last processed update id. Owned by the Run loop; never touched elsewhere.
	offset int64
}

func New(cfg *config.Config, store Store, engine *santa.Service, transport Transport) *Bot {
	return &Bot{
		transport:   transport,
		store:       store,
		engine:      engine,
		sessions:    session.NewStore(),
		organizers:  cfg.OrganizerIDs,
		dropOffNote: cfg.DropOffNote,
	}
}

// Run drives the ingestion loop until ctx is cancelled. A single failed
// iteration is logged and retried after a backoff; the loop itself never
// terminates on one.
func (b *Bot) Run(ctx context.Context) {
	log.Println("Santa bot is running")

	emptyPolls := 0
	for {
		if ctx.Err() != nil {
			return
		}

		updates, err := b.transport.GetUpdates(ctx, b.offset+1)
		if err != nil {
			log.Printf("bot: poll failed: %v", err)
			if !sleep(ctx, errorBackoff) {
				return
			}
			continue
		}

		if len(updates) == 0 {
			emptyPolls++
			if emptyPolls >= maxEmptyPolls {
				log.Println("bot: no messages for a while, still waiting")
				emptyPolls = 0
			}
		} else {
			emptyPolls = 0
			for _, update := range updates {
				// Advance the cursor before dispatching so a failed handler
				// is never replayed (at-most-once).
				b.offset = update.UpdateID
				b.handleUpdate(ctx, update)
			}
		}

		if !sleep(ctx, pollInterval) {
			return
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update telegram.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	chatID := msg.Chat.ID
	userID := msg.From.ID
	log.Printf("bot: message from %s (%d): %s", msg.From.FirstName, userID, text)

	switch {
	case isAdminCommand(text):
		b.handleAdminCommand(ctx, chatID, userID, text)
	case text == "/start":
		b.handleStart(ctx, chatID, userID, msg.From.FirstName)
	case text == "/help":
		b.transport.SendMessage(ctx, chatID, helpText)
	default:
		b.handleSessionInput(ctx, chatID, userID, text)
	}
}

// sleep waits for d or until ctx is cancelled; reports whether to keep going.
func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-time.After(d):
		return true
	case <-ctx.Done():
		return false
	}
}
