package bot

import (
	"context"
	"log"
)

// notifyAssignments tells every participant who they are giving to.
// Best-effort per participant: a failed send is logged and the fan-out
// moves on.
func (b *Bot) notifyAssignments(ctx context.Context) {
	participants, err := b.store.ListParticipants(ctx)
	if err != nil {
		log.Printf("bot: failed to list participants for fan-out: %v", err)
		return
	}

	for i := range participants {
		p := &participants[i]
		if p.RecipientID == nil {
			log.Printf("bot: participant %d has no recipient, skipping notification", p.ID)
			continue
		}
		receiver, err := b.store.ParticipantByID(ctx, *p.RecipientID)
		if err != nil {
			log.Printf("bot: failed to load recipient %d for participant %d: %v", *p.RecipientID, p.ID, err)
			continue
		}
		if !b.transport.SendMessage(ctx, p.TelegramID, assignmentMessage(receiver, b.dropOffNote)) {
			log.Printf("bot: failed to notify participant %d of their assignment", p.ID)
		}
	}
}

// notifyDelivery tells the recipient of giver's gift that it has arrived.
func (b *Bot) notifyDelivery(ctx context.Context, giverID int64) {
	giver, err := b.store.ParticipantByID(ctx, giverID)
	if err != nil {
		log.Printf("bot: failed to load participant %d: %v", giverID, err)
		return
	}
	if giver.RecipientID == nil {
		return
	}

	receiver, err := b.store.ParticipantByID(ctx, *giver.RecipientID)
	if err != nil {
		log.Printf("bot: failed to load recipient %d: %v", *giver.RecipientID, err)
		return
	}
	if !b.transport.SendMessage(ctx, receiver.TelegramID, giftDeliveredMessage(b.dropOffNote)) {
		log.Printf("bot: failed to notify participant %d about their gift", receiver.ID)
	}
}
