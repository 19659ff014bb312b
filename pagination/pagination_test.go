package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		wantP, wantS int
	}{
		{"defaults", 0, 0, 1, DefaultSize},
		{"negative page", -3, 10, 1, 10},
		{"oversized page size", 2, 500, 2, DefaultSize},
		{"valid", 3, 50, 3, 50},
		{"max size allowed", 1, MaxSize, 1, MaxSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, s := Clamp(tt.page, tt.size)
			assert.Equal(t, tt.wantP, p)
			assert.Equal(t, tt.wantS, s)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 20))
	assert.Equal(t, 20, Offset(2, 20))
	assert.Equal(t, 90, Offset(10, 10))
}
