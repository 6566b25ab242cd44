package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameData_ApplyXP(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		add       int
		wantLevel int
		wantNext  int
	}{
		{name: "first points", start: 0, add: 10, wantLevel: 1, wantNext: 90},
		{name: "exact level boundary", start: 50, add: 50, wantLevel: 2, wantNext: 100},
		{name: "several levels at once", start: 0, add: 250, wantLevel: 3, wantNext: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &GameData{TotalXP: tt.start}
			g.ApplyXP(tt.add)
			assert.Equal(t, tt.start+tt.add, g.TotalXP)
			assert.Equal(t, tt.wantLevel, g.CurrentLevel)
			assert.Equal(t, tt.wantNext, g.XPToNextLevel)
		})
	}
}

func TestAccount_DisplayName(t *testing.T) {
	first, last, email := "Ada", "Lovelace", "ada@example.com"

	assert.Equal(t, "Ada Lovelace", (&Account{FirstName: &first, LastName: &last}).DisplayName())
	assert.Equal(t, "Lovelace", (&Account{LastName: &last}).DisplayName())
	assert.Equal(t, "ada@example.com", (&Account{Email: &email}).DisplayName())
	assert.Equal(t, "", (&Account{}).DisplayName())
}
