package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hughdickinson/DCWConsensus/models"
)

func telegram(id int) models.Telegram {
	return models.Telegram{"telegramId": id}
}

func TestAssignTelegrams_InOrder(t *testing.T) {
	boxes := []models.SubjectBox{
		boxAt(1, 0, 0, 1, 1, 1),
		boxAt(2, 0, 0, 1, 1, 2),
		boxAt(3, 0, 0, 1, 1, 3),
	}
	got, warnings := AssignTelegrams(boxes, []models.Telegram{telegram(1), telegram(2)})

	assert.Empty(t, warnings)
	require.Len(t, got, 3)
	assert.Nil(t, got[0].TelegramData)
	assert.Equal(t, telegram(1), got[1].TelegramData)
	assert.Equal(t, telegram(2), got[2].TelegramData)
	assert.Equal(t, 3, got[2].BestBoxIndex)
}

func TestAssignTelegrams_Shortage(t *testing.T) {
	boxes := []models.SubjectBox{
		boxAt(1, 0, 0, 1, 1, 2),
		boxAt(2, 0, 0, 1, 1, 4),
	}
	got, warnings := AssignTelegrams(boxes, []models.Telegram{telegram(9)})

	require.Len(t, got, 2)
	assert.Equal(t, telegram(9), got[0].TelegramData)
	assert.Nil(t, got[1].TelegramData)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnTelegramShortage, warnings[0].Code)
	assert.Equal(t, 2, warnings[0].BoxIndex)
}

func TestAssignTelegrams_Surplus(t *testing.T) {
	boxes := []models.SubjectBox{boxAt(1, 0, 0, 1, 1, 1)}
	got, warnings := AssignTelegrams(boxes, []models.Telegram{telegram(1)})

	require.Len(t, got, 1)
	assert.Nil(t, got[0].TelegramData)
	assert.Equal(t, []WarningCode{WarnTelegramSurplus}, codes(warnings))
}

func TestAssignTelegrams_Empty(t *testing.T) {
	got, warnings := AssignTelegrams(nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, warnings)
}
