package valueobjects

import (
	"fmt"
)

// NotificationType is a closed enum. Its wire and storage form is the
// symbolic name from notificationTypeNames.
type NotificationType uint8

const (
	TypeInfo NotificationType = iota
	TypeSuccess
	TypeWarning
	TypeError
	TypeTicketAssigned
	TypeTicketUpdated
	TypeNewMessage
	TypeAdminMessage
)

var notificationTypeNames = [...]string{
	TypeInfo:           "Info",
	TypeSuccess:        "Success",
	TypeWarning:        "Warning",
	TypeError:          "Error",
	TypeTicketAssigned: "TicketAssigned",
	TypeTicketUpdated:  "TicketUpdated",
	TypeNewMessage:     "NewMessage",
	TypeAdminMessage:   "AdminMessage",
}

var notificationTypesByName = func() map[string]NotificationType {
	m := make(map[string]NotificationType, len(notificationTypeNames))
	for i, name := range notificationTypeNames {
		m[name] = NotificationType(i)
	}
	return m
}()

// AllNotificationTypes lists every type in declaration order.
func AllNotificationTypes() []NotificationType {
	all := make([]NotificationType, len(notificationTypeNames))
	for i := range notificationTypeNames {
		all[i] = NotificationType(i)
	}
	return all
}

func (t NotificationType) IsValid() bool {
	return int(t) < len(notificationTypeNames)
}

func (t NotificationType) String() string {
	if !t.IsValid() {
		return fmt.Sprintf("NotificationType(%d)", uint8(t))
	}
	return notificationTypeNames[t]
}

func ParseNotificationType(name string) (NotificationType, error) {
	t, ok := notificationTypesByName[name]
	if !ok {
		return 0, fmt.Errorf("invalid notification type: %q", name)
	}
	return t, nil
}

func (t NotificationType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid notification type: %d", uint8(t))
	}
	return []byte(notificationTypeNames[t]), nil
}

func (t *NotificationType) UnmarshalText(text []byte) error {
	parsed, err := ParseNotificationType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
