package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTicketStatus(t *testing.T) {
	for _, s := range []string{"Open", "InProgress", "Resolved", "Closed", "Reopened"} {
		got, err := NewTicketStatus(s)
		assert.NoError(t, err)
		assert.Equal(t, s, got.String())
	}
	_, err := NewTicketStatus("in_progress")
	assert.Error(t, err)
	assert.True(t, StatusClosed.IsClosed())
}

func TestNewPriority(t *testing.T) {
	for _, s := range []string{"Low", "Medium", "High", "Critical"} {
		_, err := NewPriority(s)
		assert.NoError(t, err)
	}
	_, err := NewPriority("Urgent")
	assert.Error(t, err)
}

func TestNewCategory(t *testing.T) {
	for _, s := range []string{"General", "Hardware", "Software", "Network", "Security", "Account"} {
		_, err := NewCategory(s)
		assert.NoError(t, err)
	}
	_, err := NewCategory("Billing")
	assert.Error(t, err)
}
