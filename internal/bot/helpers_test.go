package bot

import (
	"context"
	"sort"

	"github.com/krezhov/santabot/internal/config"
	"github.com/krezhov/santabot/internal/db"
	"github.com/krezhov/santabot/internal/santa"
	"github.com/krezhov/santabot/internal/telegram"
)

// fakeStore is an in-memory stand-in for *db.DB covering both the bot's and
// the assignment engine's store interfaces.
type fakeStore struct {
	participants map[int64]*db.Participant
	nextID       int64
	settings     db.Settings
	mutations    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		participants: make(map[int64]*db.Participant),
		nextID:       1,
		settings:     db.Settings{RegistrationOpen: true},
	}
}

func (s *fakeStore) CreateParticipant(ctx context.Context, telegramID int64, fullName, groupName, preferences string) (int64, error) {
	for _, p := range s.participants {
		if p.TelegramID == telegramID {
			return 0, db.ErrAlreadyRegistered
		}
	}
	s.mutations++
	id := s.nextID
	s.nextID++
	s.participants[id] = &db.Participant{
		ID:          id,
		TelegramID:  telegramID,
		FullName:    fullName,
		GroupName:   groupName,
		Preferences: preferences,
	}
	return id, nil
}

func (s *fakeStore) ParticipantByTelegramID(ctx context.Context, telegramID int64) (*db.Participant, error) {
	for _, p := range s.participants {
		if p.TelegramID == telegramID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *fakeStore) ParticipantByID(ctx context.Context, id int64) (*db.Participant, error) {
	p, ok := s.participants[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *fakeStore) ListParticipants(ctx context.Context) ([]db.Participant, error) {
	var out []db.Participant
	for _, p := range s.participants {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStore) DeleteParticipant(ctx context.Context, id int64) (*db.Participant, error) {
	p, ok := s.participants[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	s.mutations++
	delete(s.participants, id)
	return p, nil
}

func (s *fakeStore) SetRecipient(ctx context.Context, giverID, receiverID int64) error {
	p, ok := s.participants[giverID]
	if !ok {
		return db.ErrNotFound
	}
	s.mutations++
	r := receiverID
	p.RecipientID = &r
	return nil
}

func (s *fakeStore) MarkGiftGiven(ctx context.Context, id int64) error {
	p, ok := s.participants[id]
	if !ok {
		return db.ErrNotFound
	}
	s.mutations++
	p.GiftGiven = true
	return nil
}

func (s *fakeStore) MarkGiftReceived(ctx context.Context, id int64) error {
	p, ok := s.participants[id]
	if !ok {
		return db.ErrNotFound
	}
	s.mutations++
	p.GiftReceived = true
	return nil
}

func (s *fakeStore) Stats(ctx context.Context) (db.EventStats, error) {
	var stats db.EventStats
	for _, p := range s.participants {
		stats.Total++
		if p.GiftGiven {
			stats.Delivered++
		}
		if p.GiftReceived {
			stats.Received++
		}
	}
	return stats, nil
}

func (s *fakeStore) Settings(ctx context.Context) (db.Settings, error) {
	return s.settings, nil
}

func (s *fakeStore) SetRegistrationOpen(ctx context.Context, open bool) error {
	s.mutations++
	s.settings.RegistrationOpen = open
	return nil
}

func (s *fakeStore) SetEventStarted(ctx context.Context, started bool) error {
	s.mutations++
	s.settings.EventStarted = started
	return nil
}

type sentMessage struct {
	chatID int64
	text   string
}

// fakeTransport records outgoing messages and serves scripted poll batches.
type fakeTransport struct {
	sent       []sentMessage
	batches    [][]telegram.Update
	polled     []int64
	onPoll     func(offset int64)
	sendResult bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{sendResult: true}
}

func (t *fakeTransport) GetUpdates(ctx context.Context, offset int64) ([]telegram.Update, error) {
	t.polled = append(t.polled, offset)
	if t.onPoll != nil {
		t.onPoll(offset)
	}
	if len(t.batches) == 0 {
		return nil, nil
	}
	batch := t.batches[0]
	t.batches = t.batches[1:]
	return batch, nil
}

func (t *fakeTransport) SendMessage(ctx context.Context, chatID int64, text string) bool {
	t.sent = append(t.sent, sentMessage{chatID: chatID, text: text})
	return t.sendResult
}

// sentTo returns every message delivered to the given chat.
func (t *fakeTransport) sentTo(chatID int64) []string {
	var out []string
	for _, m := range t.sent {
		if m.chatID == chatID {
			out = append(out, m.text)
		}
	}
	return out
}

func (t *fakeTransport) lastTo(chatID int64) string {
	msgs := t.sentTo(chatID)
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}

const organizerID int64 = 9000

func newTestBot(store *fakeStore, transport *fakeTransport) *Bot {
	cfg := &config.Config{
		OrganizerIDs: map[int64]bool{organizerID: true},
	}
	return New(cfg, store, santa.New(store), transport)
}

// message builds an inbound update where the chat id equals the sender id,
// as in a private chat with the bot.
func message(updateID, userID int64, text string) telegram.Update {
	return telegram.Update{
		UpdateID: updateID,
		Message: &telegram.Message{
			Chat: telegram.Chat{ID: userID},
			From: &telegram.User{ID: userID, FirstName: "Test"},
			Text: text,
		},
	}
}

func (b *Bot) deliver(userID int64, text string) {
	b.handleUpdate(context.Background(), message(0, userID, text))
}
