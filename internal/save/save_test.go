package save

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/cattown/internal/audio"
)

func sampleDocument() *Document {
	return &Document{
		Version:       Version,
		Timestamp:     time.Date(2025, 10, 12, 9, 30, 0, 0, time.UTC),
		Player:        &Player{X: 10, Y: 20, IsCat: true, Speed: 180, BaseSpeed: 180, FacingRight: true},
		Level:         2,
		XP:            40,
		XPToNextLevel: 150,
		CatCash:       54,
		FireflyCount:  12,
		GameTime:      42000,
		IsNight:       true,
		TimeOfDay:     0.7,
		Companions:    []Companion{{X: 1, Y: 2, Type: "frog", SizeMultiplier: 1.5}},
		Chests:        []Chest{{X: 5, Y: 6, Tier: 3, Color: "red", SizeMultiplier: 2.4, FireflyCost: 20, CompanionCount: 4}},
		HouseFurniture: map[string][]Furniture{
			"player_house": {{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV", Type: "bed", X: 100, Y: 120, Width: 80, Height: 100, Size: 1}},
		},
		Audio: &audio.State{CurrentTrackIndex: 1, Volume: 0.5},
	}
}

func TestEncodeDecodeStable(t *testing.T) {
	var first bytes.Buffer
	require.NoError(t, Encode(&first, sampleDocument()))

	doc, err := Decode(bytes.NewReader(first.Bytes()))
	require.NoError(t, err)

	var second bytes.Buffer
	require.NoError(t, Encode(&second, doc))
	assert.JSONEq(t, first.String(), second.String())
	assert.Equal(t, 3, doc.Chests[0].Tier)
	assert.Equal(t, 20, doc.Chests[0].FireflyCost)
}

func TestDecodeUsesCamelCaseFieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleDocument()))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	for _, key := range []string{"xpToNextLevel", "catCash", "fireflyCount", "droppedCompanions", "houseFurniture", "currentHouseId"} {
		assert.Contains(t, raw, key)
	}
	chest := raw["chests"].([]any)[0].(map[string]any)
	assert.Contains(t, chest, "sizeMultiplier")
}

func TestDecodeRejects(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"player":{}}`))
	assert.ErrorIs(t, err, ErrMissingVersion)

	_, err = Decode(strings.NewReader(`{"version":`))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Decode(strings.NewReader(`{"version":"1.0.0","level":1,"xpToNextLevel":100}`))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Decode(strings.NewReader(`{"version":"1.0.0","player":{},"level":1,"xpToNextLevel":100,"chests":[{"tier":-1}]}`))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestWriteAndFindLatest(t *testing.T) {
	dir := t.TempDir()
	older := sampleDocument()
	older.Timestamp = older.Timestamp.AddDate(0, 0, -1)
	oldPath, err := WriteFile(dir, older)
	require.NoError(t, err)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(oldPath, past, past))

	newPath, err := WriteFile(dir, sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cattown_save_2025-10-12.json"), newPath)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{}"), 0o644))

	latest, err := Latest(dir)
	require.NoError(t, err)
	assert.Equal(t, newPath, latest)

	doc, err := ReadFile(latest)
	require.NoError(t, err)
	assert.Equal(t, 54, doc.CatCash)
}

func TestLatestEmptyDir(t *testing.T) {
	_, err := Latest(t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSchemaCoversDocument(t *testing.T) {
	data, err := json.Marshal(Schema())
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, "Cat Town Save")
	assert.Contains(t, s, "xpToNextLevel")
	assert.Contains(t, s, "sizeMultiplier")
}
