package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
)

type sendMessageInput struct {
	TicketID    uint   `json:"ticketId" validate:"required,gt=0"`
	Message     string `json:"message" validate:"required,max=10"`
	SenderEmail string `json:"senderEmail" validate:"omitempty,email"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		in          sendMessageInput
		wantErr     bool
		wantDetails []string
	}{
		{"valid", sendMessageInput{TicketID: 1, Message: "hi", SenderEmail: "a@x.com"}, false, nil},
		{"missing ticket", sendMessageInput{Message: "hi"}, true, []string{"ticketId is required"}},
		{"long message", sendMessageInput{TicketID: 1, Message: "01234567890"}, true, []string{"message must be at most 10 characters long"}},
		{"bad email", sendMessageInput{TicketID: 1, Message: "hi", SenderEmail: "nope"}, true, []string{"senderEmail must be a valid email address"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.in)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
			for _, d := range tt.wantDetails {
				assert.Contains(t, appErr.Details, d)
			}
		})
	}
}
