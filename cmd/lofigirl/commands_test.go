package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lofigirl-terminal/internal/player"
	"lofigirl-terminal/internal/station"
)

const directURL = "https://radio.example.com/lofi.mp3"

func directSession(t *testing.T) (*player.Session, *player.NopEngine) {
	t.Helper()
	engine := player.NewNopEngine()
	sess, err := player.NewSession(player.Options{Engine: engine, Volume: 50, Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Cleanup() })
	return sess, engine
}

func outputCmd() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	return cmd, &out
}

func directStation() station.Record {
	return station.New("direct", "Direct Radio", directURL, "plain MP3 stream", "lofi")
}

func TestPlayUntilDone_Interrupted(t *testing.T) {
	sess, engine := directSession(t)
	cmd, out := outputCmd()
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	require.NoError(t, playUntilDone(ctx, cmd, sess, directStation()))

	assert.Contains(t, out.String(), "Direct Radio")
	assert.Contains(t, out.String(), "PLAYING")
	assert.Contains(t, out.String(), "Stopping...")
	assert.Equal(t, player.StateStopped, sess.State())
	assert.Equal(t, directURL, engine.URL())
	assert.Contains(t, engine.Calls(), "Stop")
}

func TestPlayUntilDone_StreamEnds(t *testing.T) {
	sess, engine := directSession(t)
	cmd, out := outputCmd()
	engine.Emit(player.EngineEvent{Kind: player.EngineEndFile, Reason: "eof"})

	require.NoError(t, playUntilDone(t.Context(), cmd, sess, directStation()))
	assert.Contains(t, out.String(), "Stream ended.")
	assert.Equal(t, player.StateStopped, sess.State())
}

func TestPlayUntilDone_EngineFailure(t *testing.T) {
	boom := errors.New("audio output lost")
	sess, engine := directSession(t)
	cmd, _ := outputCmd()
	engine.Emit(player.EngineEvent{Kind: player.EngineFailed, Err: boom})

	err := playUntilDone(t.Context(), cmd, sess, directStation())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, player.StateError, sess.State())
}

func TestPlayUntilDone_StartFailure(t *testing.T) {
	sess, engine := directSession(t)
	cmd, out := outputCmd()
	engine.Fail("Start", errors.New("device busy"))

	err := playUntilDone(t.Context(), cmd, sess, directStation())
	require.ErrorIs(t, err, player.ErrEngineError)
	assert.NotContains(t, out.String(), "Press Ctrl+C")
}

func TestPlayUntilDone_SessionClosed(t *testing.T) {
	sess, _ := directSession(t)
	cmd := &cobra.Command{}
	cmd.SetOut(io.Discard)
	done := make(chan error, 1)

	go func() { done <- playUntilDone(t.Context(), cmd, sess, directStation()) }()
	require.Eventually(t, func() bool { return sess.State() == player.StatePlaying }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, sess.Cleanup())

	assert.NoError(t, <-done)
}
