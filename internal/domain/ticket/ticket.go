package ticket

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/ticketdesk/ticketdesk/internal/domain/ticket/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 4000
)

type Ticket struct {
	id           uint
	title        string
	description  string
	status       vo.TicketStatus
	priority     vo.Priority
	category     vo.Category
	createdByID  uint
	assignedToID *uint
	createdAt    time.Time
	updatedAt    time.Time
	resolvedAt   *time.Time
}

func NewTicket(
	title string,
	description string,
	priority vo.Priority,
	category vo.Category,
	createdByID uint,
) (*Ticket, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > maxTitleLength {
		return nil, fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	}
	if len(description) > maxDescriptionLength {
		return nil, fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category: %s", category)
	}
	if createdByID == 0 {
		return nil, fmt.Errorf("creator is required")
	}

	now := biztime.NowUTC()
	return &Ticket{
		title:       title,
		description: description,
		status:      vo.StatusOpen,
		priority:    priority,
		category:    category,
		createdByID: createdByID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTicket(
	id uint,
	title, description string,
	status vo.TicketStatus,
	priority vo.Priority,
	category vo.Category,
	createdByID uint,
	assignedToID *uint,
	createdAt, updatedAt time.Time,
	resolvedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid ticket status: %s", status)
	}
	return &Ticket{
		id:           id,
		title:        title,
		description:  description,
		status:       status,
		priority:     priority,
		category:     category,
		createdByID:  createdByID,
		assignedToID: assignedToID,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		resolvedAt:   resolvedAt,
	}, nil
}

func (t *Ticket) ID() uint { return t.id }
func (t *Ticket) Title() string { return t.title }
func (t *Ticket) Description() string { return t.description }
func (t *Ticket) Status() vo.TicketStatus { return t.status }
func (t *Ticket) Priority() vo.Priority { return t.priority }
func (t *Ticket) Category() vo.Category { return t.category }
func (t *Ticket) CreatedByID() uint { return t.createdByID }
func (t *Ticket) AssignedToID() *uint { return t.assignedToID }
func (t *Ticket) CreatedAt() time.Time { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time { return t.updatedAt }
func (t *Ticket) ResolvedAt() *time.Time { return t.resolvedAt }

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// AssignTo sets the assignee, nil unassigns.
func (t *Ticket) AssignTo(userID *uint) {
	t.assignedToID = userID
	t.updatedAt = biztime.NowUTC()
}

// Touch advances updatedAt to at. Earlier values are ignored so the
// timestamp never moves backwards.
func (t *Ticket) Touch(at time.Time) {
	if at.After(t.updatedAt) {
		t.updatedAt = at
	}
}
