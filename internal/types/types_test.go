package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMode_String(t *testing.T) {
	assert.Equal(t, "NORMAL", ModeNormal.String())
	assert.Equal(t, "SEARCH", ModeSearch.String())
	assert.Equal(t, "DIALOG", ModeDialog.String())
	assert.Equal(t, "UNKNOWN", Mode(99).String())
}

func TestPruneToasts(t *testing.T) {
	now := time.Date(2025, 10, 16, 12, 0, 0, 0, time.UTC)
	toasts := []Toast{
		{Message: "old", Expires: now.Add(-time.Second)},
		{Message: "fresh", Expires: now.Add(time.Second)},
		{Message: "edge", Expires: now},
	}

	kept := PruneToasts(toasts, now)

	assert.Len(t, kept, 1)
	assert.Equal(t, "fresh", kept[0].Message)
}
