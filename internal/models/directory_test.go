package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strangerchat/backend/internal/models"
)

func TestDirectoryEntryFlattensProfile(t *testing.T) {
	e := models.DirectoryEntry{
		ID:       "user_A",
		Nickname: "Aye",
		Profile:  map[string]any{"interests": "chess", "age": 30},
	}

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "user_A", out["id"])
	assert.Equal(t, "Aye", out["nickname"])
	assert.Equal(t, "chess", out["interests"])
	assert.Equal(t, float64(30), out["age"])
}

func TestDirectoryEntryReservedKeysWin(t *testing.T) {
	e := models.DirectoryEntry{
		ID:       "user_A",
		Nickname: "Aye",
		Profile:  map[string]any{"id": "spoofed", "nickname": "spoofed"},
	}

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "user_A", out["id"])
	assert.Equal(t, "Aye", out["nickname"])
}
