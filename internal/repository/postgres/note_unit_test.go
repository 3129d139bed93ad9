package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNoteRepository(t *testing.T) {
	db := &Connection{}
	repo := NewNoteRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"50%", `50\%`},
		{"under_score", `under\_score`},
		{`back\slash`, `back\\slash`},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeLike(tt.in), "input %q", tt.in)
	}
}
