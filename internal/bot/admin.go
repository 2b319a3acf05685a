package bot

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/krezhov/santabot/internal/db"
	"github.com/krezhov/santabot/internal/santa"
)

type adminAction int

const (
	actionStats adminAction = iota
	actionList
	actionCloseRegistration
	actionOpenRegistration
	actionStartEvent
	actionDelete
	actionMarkDelivered
	actionMarkReceived
	actionHelp
)

// adminCommand is the parsed form of an organizer command: the action plus
// its validated argument, so handlers never re-parse raw text.
type adminCommand struct {
	action adminAction
	id     int64
}

var adminActions = map[string]adminAction{
	"/stats":              actionStats,
	"/list":               actionList,
	"/close-registration": actionCloseRegistration,
	"/open-registration":  actionOpenRegistration,
	"/start-event":        actionStartEvent,
	"/delete":             actionDelete,
	"/mark-delivered":     actionMarkDelivered,
	"/mark-received":      actionMarkReceived,
	"/help-admin":         actionHelp,
}

var idArgActions = map[adminAction]bool{
	actionDelete:        true,
	actionMarkDelivered: true,
	actionMarkReceived:  true,
}

func isAdminCommand(text string) bool {
	token := strings.Fields(text)[0]
	_, ok := adminActions[token]
	return ok
}

// parseAdminCommand validates a recognized admin command. The returned error
// message, when non-empty, is the usage text to show the organizer.
func parseAdminCommand(text string) (adminCommand, string) {
	fields := strings.Fields(text)
	action := adminActions[fields[0]]

	if !idArgActions[action] {
		return adminCommand{action: action}, ""
	}

	if len(fields) < 2 {
		return adminCommand{}, usageMessage(fields[0])
	}
	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return adminCommand{}, usageMessage(fields[0])
	}
	return adminCommand{action: action, id: id}, ""
}

func (b *Bot) handleAdminCommand(ctx context.Context, chatID, userID int64, text string) {
	if !b.organizers[userID] {
		b.transport.SendMessage(ctx, chatID, notOrganizerText)
		return
	}

	cmd, usage := parseAdminCommand(text)
	if usage != "" {
		b.transport.SendMessage(ctx, chatID, usage)
		return
	}

	switch cmd.action {
	case actionStats:
		b.handleStats(ctx, chatID)
	case actionList:
		b.handleList(ctx, chatID)
	case actionCloseRegistration:
		b.handleSetRegistration(ctx, chatID, false)
	case actionOpenRegistration:
		b.handleSetRegistration(ctx, chatID, true)
	case actionStartEvent:
		b.handleStartEvent(ctx, chatID)
	case actionDelete:
		b.handleDelete(ctx, chatID, cmd.id)
	case actionMarkDelivered:
		b.handleMarkDelivered(ctx, chatID, cmd.id)
	case actionMarkReceived:
		b.handleMarkReceived(ctx, chatID, cmd.id)
	case actionHelp:
		b.transport.SendMessage(ctx, chatID, adminHelpText)
	}
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) {
	stats, err := b.store.Stats(ctx)
	if err != nil {
		log.Printf("bot: failed to load stats: %v", err)
		b.transport.SendMessage(ctx, chatID, somethingWrongText)
		return
	}
	settings, err := b.store.Settings(ctx)
	if err != nil {
		log.Printf("bot: failed to load settings: %v", err)
		b.transport.SendMessage(ctx, chatID, somethingWrongText)
		return
	}
	b.transport.SendMessage(ctx, chatID, statsMessage(stats, settings))
}

func (b *Bot) handleList(ctx context.Context, chatID int64) {
	participants, err := b.store.ListParticipants(ctx)
	if err != nil {
		log.Printf("bot: failed to list participants: %v", err)
		b.transport.SendMessage(ctx, chatID, somethingWrongText)
		return
	}
	if len(participants) == 0 {
		b.transport.SendMessage(ctx, chatID, noParticipantsText)
		return
	}
	b.transport.SendMessage(ctx, chatID, participantListMessage(participants))
}

// handleSetRegistration flips the registration flag. Setting it to its
// current value is a no-op with the same confirmation.
func (b *Bot) handleSetRegistration(ctx context.Context, chatID int64, open bool) {
	if err := b.store.SetRegistrationOpen(ctx, open); err != nil {
		log.Printf("bot: failed to update registration flag: %v", err)
		b.transport.SendMessage(ctx, chatID, somethingWrongText)
		return
	}
	if open {
		b.transport.SendMessage(ctx, chatID, registrationOpenedText)
	} else {
		b.transport.SendMessage(ctx, chatID, registrationClosedConfirmText)
	}
}

func (b *Bot) handleStartEvent(ctx context.Context, chatID int64) {
	count, err := b.engine.Assign(ctx)
	switch {
	case err == nil:
		b.transport.SendMessage(ctx, chatID, drawDoneMessage(count))
		b.notifyAssignments(ctx)
	case errors.Is(err, santa.ErrNotEnoughParticipants):
		b.transport.SendMessage(ctx, chatID, needTwoParticipantsText)
	default:
		log.Printf("bot: assignment run failed: %v", err)
		b.transport.SendMessage(ctx, chatID, somethingWrongText)
	}
}

func (b *Bot) handleDelete(ctx context.Context, chatID, id int64) {
	deleted, err := b.store.DeleteParticipant(ctx, id)
	switch {
	case errors.Is(err, db.ErrNotFound):
		b.transport.SendMessage(ctx, chatID, participantNotFoundText)
		return
	case err != nil:
		log.Printf("bot: failed to delete participant %d: %v", id, err)
		b.transport.SendMessage(ctx, chatID, somethingWrongText)
		return
	}

	b.transport.SendMessage(ctx, chatID, deletedMessage(deleted))

	// The deleted participant may have been a link in the current cycle.
	settings, err := b.store.Settings(ctx)
	if err != nil {
		log.Printf("bot: failed to load settings: %v", err)
		return
	}
	if settings.EventStarted {
		b.transport.SendMessage(ctx, chatID, rerunAdvisoryText)
	}
}

func (b *Bot) handleMarkDelivered(ctx context.Context, chatID, id int64) {
	if err := b.store.MarkGiftGiven(ctx, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			b.transport.SendMessage(ctx, chatID, participantNotFoundText)
		} else {
			log.Printf("bot: failed to mark gift %d delivered: %v", id, err)
			b.transport.SendMessage(ctx, chatID, somethingWrongText)
		}
		return
	}
	b.transport.SendMessage(ctx, chatID, markedDeliveredMessage(id))
	b.notifyDelivery(ctx, id)
}

// handleMarkReceived confirms to the organizer only; the giver is not
// notified.
func (b *Bot) handleMarkReceived(ctx context.Context, chatID, id int64) {
	if err := b.store.MarkGiftReceived(ctx, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			b.transport.SendMessage(ctx, chatID, participantNotFoundText)
		} else {
			log.Printf("bot: failed to mark gift %d received: %v", id, err)
			b.transport.SendMessage(ctx, chatID, somethingWrongText)
		}
		return
	}
	b.transport.SendMessage(ctx, chatID, markedReceivedMessage(id))
}
