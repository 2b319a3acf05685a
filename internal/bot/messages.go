package bot

import (
	"fmt"
	"strings"

	"github.com/krezhov/santabot/internal/db"
)

const (
	helpText = `🎅 Bot help:

/start - register or check your status
/help - this message

Organizers can use /help-admin`

	adminHelpText = `🎅 Organizer commands:

/stats - event statistics
/list - list participants
/close-registration - close registration
/open-registration - open registration
/start-event - run the draw
/delete <ID> - remove a participant
/mark-delivered <ID> - mark a gift as delivered
/mark-received <ID> - mark a gift as received

📝 Examples:
/delete 5
/mark-delivered 3
/mark-received 7`

	askGroupText       = "Great! Now enter your group:"
	askPreferencesText = "Awesome! Now describe your gift preferences:\n• What do you like?\n• What do you dislike?\n• What would you love to get?"

	useStartText               = "Use /start to register!"
	registrationClosedText     = "Registration for the event is closed! 🎅"
	alreadyRegisteredShortText = "You are already registered!"
	drawPendingText            = "The draw has not happened yet, or something went wrong."
	notOrganizerText           = "You don't have organizer permissions"
	somethingWrongText         = "Something went wrong, please try again later."

	registrationOpenedText        = "✅ Registration is open!"
	registrationClosedConfirmText = "✅ Registration is closed!"
	needTwoParticipantsText       = "❌ The draw needs at least 2 participants"
	participantNotFoundText       = "❌ No participant with that ID"
	noParticipantsText            = "No registered participants"
	rerunAdvisoryText             = "⚠️ The event has already started. Re-running the draw with /start-event is recommended"
)

func welcomeMessage(firstName string) string {
	if firstName == "" {
		firstName = "friend"
	}
	return fmt.Sprintf("Hi, %s! 🎄\nWelcome to the Secret Santa exchange!\n\nEnter your full name:", firstName)
}

func alreadyRegisteredMessage(p *db.Participant) string {
	return fmt.Sprintf("Hi, %s! You are already registered.\nYour ID: Secret Santa %d\n\nWait for the event to start!", p.FullName, p.ID)
}

func registrationDoneMessage(id int64, fullName, group string) string {
	return fmt.Sprintf("🎉 Registration complete! 🎉\n\nYour ID: Secret Santa %d\nName: %s\nGroup: %s\n\nWait for the event to start!", id, fullName, group)
}

func assignmentMessage(receiver *db.Participant, dropOffNote string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🎅 You are giving a gift to Secret Santa %d\n\nTheir preferences:\n%s", receiver.ID, receiver.Preferences)
	if dropOffNote != "" {
		fmt.Fprintf(&sb, "\n\n📦 %s", dropOffNote)
	}
	fmt.Fprintf(&sb, "\n✏️ Don't forget to label the gift with ID %d", receiver.ID)
	return sb.String()
}

func giftDeliveredMessage(dropOffNote string) string {
	msg := "🎉 Your Secret Santa has delivered your gift!"
	if dropOffNote != "" {
		msg += " " + dropOffNote
	}
	return msg
}

func statsMessage(stats db.EventStats, settings db.Settings) string {
	return fmt.Sprintf(`📊 Event statistics:

👥 Registered participants: %d
🎁 Gifts delivered: %d
🎁 Gifts received: %d

Registration: %s
Event: %s`,
		stats.Total, stats.Delivered, stats.Received,
		openClosed(settings.RegistrationOpen), startedNotStarted(settings.EventStarted))
}

func participantListMessage(participants []db.Participant) string {
	var sb strings.Builder
	sb.WriteString("📋 Participants:\n\n")
	for _, p := range participants {
		fmt.Fprintf(&sb, "🎅 %s (ID: %d)\nGroup: %s\nDelivered: %s Received: %s\n\n",
			p.FullName, p.ID, p.GroupName, checkmark(p.GiftGiven), checkmark(p.GiftReceived))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func drawDoneMessage(count int) string {
	return fmt.Sprintf("✅ The draw is complete! Participants: %d", count)
}

func deletedMessage(p *db.Participant) string {
	return fmt.Sprintf("✅ Participant removed:\nID: %d\nName: %s\nGroup: %s", p.ID, p.FullName, p.GroupName)
}

func markedDeliveredMessage(id int64) string {
	return fmt.Sprintf("✅ Gift from Secret Santa %d marked as delivered", id)
}

func markedReceivedMessage(id int64) string {
	return fmt.Sprintf("✅ Gift for Secret Santa %d marked as received", id)
}

func usageMessage(command string) string {
	return fmt.Sprintf("Usage: %s <ID>\n\nFor example: %s 5", command, command)
}

func checkmark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

func openClosed(open bool) string {
	if open {
		return "✅ Open"
	}
	return "❌ Closed"
}

func startedNotStarted(started bool) string {
	if started {
		return "✅ Started"
	}
	return "❌ Not started"
}
