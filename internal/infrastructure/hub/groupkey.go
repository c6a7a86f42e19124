package hub

import (
	"fmt"
	"strconv"
	"strings"
)

// GroupKey names a broadcast group.
type GroupKey string

const (
	ticketPrefix = "ticket:"
	userPrefix   = "user:"
)

// TicketGroup is the conversation group of a ticket.
func TicketGroup(ticketID uint) GroupKey {
	return GroupKey(ticketPrefix + strconv.FormatUint(uint64(ticketID), 10))
}

// UserGroup is the personal notification group of a user.
func UserGroup(userID uint) GroupKey {
	return GroupKey(userPrefix + strconv.FormatUint(uint64(userID), 10))
}

func (k GroupKey) String() string {
	return string(k)
}

// Kind returns "ticket" or "user", or an empty string for an unknown key.
func (k GroupKey) Kind() string {
	switch {
	case strings.HasPrefix(string(k), ticketPrefix):
		return "ticket"
	case strings.HasPrefix(string(k), userPrefix):
		return "user"
	default:
		return ""
	}
}

// ParseGroupKey validates a key received from another instance.
func ParseGroupKey(s string) (GroupKey, error) {
	var idPart string
	switch {
	case strings.HasPrefix(s, ticketPrefix):
		idPart = strings.TrimPrefix(s, ticketPrefix)
	case strings.HasPrefix(s, userPrefix):
		idPart = strings.TrimPrefix(s, userPrefix)
	default:
		return "", fmt.Errorf("unknown group key %q", s)
	}
	id, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil || id == 0 {
		return "", fmt.Errorf("invalid id in group key %q", s)
	}
	return GroupKey(s), nil
}
