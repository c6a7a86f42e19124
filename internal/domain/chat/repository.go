package chat

import "context"

type Repository interface {
	// Create inserts the message and its attachments and sets their ids.
	Create(ctx context.Context, message *Message) error
	// ListByTicket returns messages ordered by sentAt ascending with sender and
	// attachments loaded.
	ListByTicket(ctx context.Context, ticketID uint) ([]*Message, error)
}

type TicketAttachmentRepository interface {
	Create(ctx context.Context, ticketID uint, attachment *Attachment) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*Attachment, error)
}
