package store

import (
	"testing"

	"likesdigest/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideos_RoundTripAndOverwrite(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	loaded, err := s.LoadVideos()
	require.NoError(t, err)
	assert.Nil(t, loaded, "no snapshot yet")

	require.NoError(t, s.SaveVideos([]model.Video{{ID: "v1", Title: "one"}, {ID: "v2"}}))
	require.NoError(t, s.SaveVideos([]model.Video{{ID: "v3", Title: "three"}}))

	loaded, err = s.LoadVideos()
	require.NoError(t, err)
	require.Len(t, loaded, 1, "snapshot is overwritten wholesale")
	assert.Equal(t, "v3", loaded[0].ID)
}

func TestTranscript_CaptionsPreferredOverWhisper(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.SaveTranscript(model.Transcript{
		VideoID: "v1", Method: model.MethodWhisper, Text: "whisper text", Status: model.StatusSuccess,
	}))
	require.NoError(t, s.SaveTranscript(model.Transcript{
		VideoID: "v1", Method: model.MethodCaptions, Text: "caption text", Status: model.StatusSuccess,
	}))

	got, ok, err := s.LoadTranscript("v1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.MethodCaptions, got.Method)
	assert.Equal(t, "caption text", got.Text)
}

func TestTranscript_NonSuccessNotPersisted(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.SaveTranscript(model.Transcript{
		VideoID: "v1", Method: model.MethodCaptions, Status: model.StatusNoTranscript,
	}))

	_, ok, err := s.LoadTranscript("v1")
	require.NoError(t, err)
	assert.False(t, ok, "failed extraction must stay retryable")
}

func TestSummary_RoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, ok, err := s.LoadSummary("v1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveSummary(model.Summary{
		VideoID: "v1", Type: model.TypeGeneral, Summary: "short", Status: model.StatusSuccess,
	}))
	require.NoError(t, s.SaveSummary(model.Summary{
		VideoID: "v2", Status: model.StatusError, Error: "api down",
	}))

	got, ok, err := s.LoadSummary("v1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "short", got.Summary)

	_, ok, err = s.LoadSummary("v2")
	require.NoError(t, err)
	assert.False(t, ok, "error summaries are not memoized")
}
