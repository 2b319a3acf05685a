package bot

import (
	"context"
	"errors"
	"log"

	"github.com/krezhov/santabot/internal/db"
	"github.com/krezhov/santabot/internal/session"
)

// handleStart is the registration entry point. Already-registered users get
// their status (or their assignment once the event has started) and no
// session; new users get a dialogue while registration is open.
func (b *Bot) handleStart(ctx context.Context, chatID, userID int64, firstName string) {
	existing, err := b.store.ParticipantByTelegramID(ctx, userID)
	switch {
	case err == nil:
		settings, serr := b.store.Settings(ctx)
		if serr != nil {
			log.Printf("bot: failed to load settings: %v", serr)
			b.transport.SendMessage(ctx, chatID, somethingWrongText)
			return
		}
		if settings.EventStarted {
			b.sendAssignmentView(ctx, chatID, existing)
		} else {
			b.transport.SendMessage(ctx, chatID, alreadyRegisteredMessage(existing))
		}
		return
	case !errors.Is(err, db.ErrNotFound):
		log.Printf("bot: failed to look up participant %d: %v", userID, err)
		b.transport.SendMessage(ctx, chatID, somethingWrongText)
		return
	}

	settings, err := b.store.Settings(ctx)
	if err != nil {
		log.Printf("bot: failed to load settings: %v", err)
		b.transport.SendMessage(ctx, chatID, somethingWrongText)
		return
	}
	if !settings.RegistrationOpen {
		b.transport.SendMessage(ctx, chatID, registrationClosedText)
		return
	}

	b.sessions.Start(userID)
	b.transport.SendMessage(ctx, chatID, welcomeMessage(firstName))
}

// handleSessionInput feeds free text into the active registration dialogue.
// Each message answers the current step's question; content is stored
// verbatim, without validation.
func (b *Bot) handleSessionInput(ctx context.Context, chatID, userID int64, text string) {
	sess, ok := b.sessions.Get(userID)
	if !ok {
		b.transport.SendMessage(ctx, chatID, useStartText)
		return
	}

	switch sess.Step {
	case session.StepName:
		sess.FullName = text
		sess.Step = session.StepGroup
		b.transport.SendMessage(ctx, chatID, askGroupText)

	case session.StepGroup:
		sess.Group = text
		sess.Step = session.StepPreferences
		b.transport.SendMessage(ctx, chatID, askPreferencesText)

	case session.StepPreferences:
		b.commitRegistration(ctx, chatID, userID, sess, text)
	}
}

// commitRegistration persists the finished profile. Whatever the outcome,
// the session is destroyed; a commit attempt is never left pending.
func (b *Bot) commitRegistration(ctx context.Context, chatID, userID int64, sess *session.Session, preferences string) {
	defer b.sessions.Delete(userID)

	id, err := b.store.CreateParticipant(ctx, userID, sess.FullName, sess.Group, preferences)
	switch {
	case err == nil:
		log.Printf("bot: user %d registered as Secret Santa %d", userID, id)
		b.transport.SendMessage(ctx, chatID, registrationDoneMessage(id, sess.FullName, sess.Group))
	case errors.Is(err, db.ErrAlreadyRegistered):
		b.transport.SendMessage(ctx, chatID, alreadyRegisteredShortText)
	default:
		log.Printf("bot: failed to save registration for %d: %v", userID, err)
		b.transport.SendMessage(ctx, chatID, somethingWrongText)
	}
}

// sendAssignmentView tells a participant who they are giving to.
func (b *Bot) sendAssignmentView(ctx context.Context, chatID int64, p *db.Participant) {
	if p.RecipientID == nil {
		b.transport.SendMessage(ctx, chatID, drawPendingText)
		return
	}

	receiver, err := b.store.ParticipantByID(ctx, *p.RecipientID)
	if err != nil {
		log.Printf("bot: failed to load recipient %d for participant %d: %v", *p.RecipientID, p.ID, err)
		b.transport.SendMessage(ctx, chatID, drawPendingText)
		return
	}

	b.transport.SendMessage(ctx, chatID, assignmentMessage(receiver, b.dropOffNote))
}
