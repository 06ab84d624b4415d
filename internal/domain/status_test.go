package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range AllStatuses {
		got, ok := ParseStatus(string(s))
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}

	_, ok := ParseStatus("shipped")
	assert.False(t, ok)
	_, ok = ParseStatus("")
	assert.False(t, ok)
}

func TestTransitions(t *testing.T) {
	legal := []struct{ from, to Status }{
		{StatusNew, StatusProcessing},
		{StatusProcessing, StatusCompleted},
		{StatusCompleted, StatusPaid},
		{StatusCompleted, StatusProcessing},
		{StatusPaid, StatusArchived},
		{StatusPaid, StatusCompleted},
		{StatusArchived, StatusPaid},
	}
	for _, tc := range legal {
		assert.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be legal", tc.from, tc.to)
	}

	illegal := []struct{ from, to Status }{
		{StatusNew, StatusCompleted},
		{StatusNew, StatusPaid},
		{StatusNew, StatusArchived},
		{StatusProcessing, StatusNew},
		{StatusProcessing, StatusPaid},
		{StatusCompleted, StatusNew},
		{StatusCompleted, StatusArchived},
		{StatusPaid, StatusNew},
		{StatusPaid, StatusProcessing},
		{StatusArchived, StatusNew},
		{StatusArchived, StatusCompleted},
		{StatusNew, StatusNew},
	}
	for _, tc := range illegal {
		assert.False(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be illegal", tc.from, tc.to)
	}
}

func TestDeletableAndEditable(t *testing.T) {
	assert.True(t, StatusNew.Deletable())
	assert.True(t, StatusArchived.Deletable())
	assert.False(t, StatusProcessing.Deletable())
	assert.False(t, StatusCompleted.Deletable())
	assert.False(t, StatusPaid.Deletable())

	assert.True(t, StatusNew.Editable())
	assert.True(t, StatusProcessing.Editable())
	assert.False(t, StatusCompleted.Editable())
}

// Every workflow state must carry complete display metadata.
func TestStatusInfoCoversAllStates(t *testing.T) {
	for _, s := range AllStatuses {
		info := s.Info()
		require.NotEmpty(t, info.Label, "label missing for %s", s)
		require.NotEmpty(t, info.BadgeClass, "badge class missing for %s", s)
		require.NotEmpty(t, info.EmptyText, "empty text missing for %s", s)
	}

	unknown := Status("shipped").Info()
	assert.Equal(t, "Không xác định", unknown.Label)
}

func TestNextStatusesForwardFirst(t *testing.T) {
	assert.Equal(t, []Status{StatusProcessing}, StatusNew.NextStatuses())
	assert.Equal(t, []Status{StatusPaid, StatusProcessing}, StatusCompleted.NextStatuses())
	assert.Equal(t, []Status{StatusArchived, StatusCompleted}, StatusPaid.NextStatuses())
	assert.Equal(t, []Status{StatusPaid}, StatusArchived.NextStatuses())
}
