package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/ticketdesk/ticketdesk/internal/domain/ticket/valueobjects"
)

func TestNewTicket(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		creatorID uint
		priority  vo.Priority
		wantErr   bool
	}{
		{"valid", "VPN down", 1, vo.PriorityHigh, false},
		{"blank title", "   ", 1, vo.PriorityHigh, true},
		{"no creator", "VPN down", 0, vo.PriorityHigh, true},
		{"bad priority", "VPN down", 1, vo.Priority("Urgent"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, err := NewTicket(tt.title, "", tt.priority, vo.CategoryNetwork, tt.creatorID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, vo.StatusOpen, tk.Status())
			assert.Nil(t, tk.AssignedToID())
			assert.Equal(t, tk.CreatedAt(), tk.UpdatedAt())
		})
	}
}

func TestTicket_TouchIsMonotonic(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tk, err := ReconstructTicket(42, "t", "", vo.StatusOpen, vo.PriorityLow, vo.CategoryGeneral, 1, nil, base, base, nil)
	require.NoError(t, err)

	tk.Touch(base.Add(time.Minute))
	assert.Equal(t, base.Add(time.Minute), tk.UpdatedAt())

	tk.Touch(base.Add(30 * time.Second))
	assert.Equal(t, base.Add(time.Minute), tk.UpdatedAt())
}
