package gameid

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bluff/internal/randutil"
)

func TestGenerate(t *testing.T) {
	id := Generate()
	require.Len(t, id, Length)
	require.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := Generate()
		assert.False(t, ids[id], "duplicate ID generated: %s", id)
		ids[id] = true
	}
}

func TestGeneratorIsDeterministic(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	now := func() time.Time { return at }

	a := NewGenerator(randutil.New(1), now).Generate()
	b := NewGenerator(randutil.New(1), now).Generate()
	assert.Equal(t, a, b)
	require.NoError(t, Validate(a))
}

func TestIDsSortByTime(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rng := randutil.New(2)

	var ids []string
	for i := 0; i < 20; i++ {
		at := base.Add(time.Duration(i) * time.Second)
		ids = append(ids, NewGenerator(rng, func() time.Time { return at }).Generate())
	}
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "01h2xcejqtf2nbrexx3vqjhp41", false},
		{"too short", "01h2xcejqt", true},
		{"first char too high", "81h2xcejqtf2nbrexx3vqjhp41", true},
		{"invalid character", "01h2xcejqtf2nbrexx3vqjhpu1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
