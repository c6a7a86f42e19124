package models

// All returns every model in foreign-key dependency order.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&TicketModel{},
		&ChatMessageModel{},
		&ChatAttachmentModel{},
		&TicketAttachmentModel{},
		&NotificationModel{},
	}
}
