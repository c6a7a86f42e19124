package chat

// NotificationRecipients returns who should be notified about a new message
// on a ticket: the creator and the assignee, never the sender, each at most
// once. Zero ids are treated as absent.
func NotificationRecipients(creatorID uint, assigneeID *uint, senderID uint) []uint {
	candidates := []uint{creatorID}
	if assigneeID != nil {
		candidates = append(candidates, *assigneeID)
	}

	recipients := make([]uint, 0, len(candidates))
	for _, id := range candidates {
		if id == 0 || id == senderID {
			continue
		}
		if len(recipients) > 0 && recipients[0] == id {
			continue
		}
		recipients = append(recipients, id)
	}
	return recipients
}
