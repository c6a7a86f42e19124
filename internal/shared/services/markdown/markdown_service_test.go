package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTMLSanitized(t *testing.T) {
	svc := NewMarkdownService()

	out, err := svc.ToHTMLSanitized("**Ticket #42** updated\n\n<script>alert(1)</script>")
	require.NoError(t, err)

	assert.Contains(t, out, "<strong>Ticket #42</strong>")
	assert.NotContains(t, out, "<script>")
}
