// Package presence mirrors what is playing into Discord rich presence.
package presence

import (
	"fmt"
	"sync"
	"time"

	"github.com/babycommando/rich-go/client"
	"github.com/rs/zerolog"

	"lofigirl-terminal/internal/station"
)

// activityListening is Discord's "Listening to" activity type.
const activityListening = 2

const largeImage = "lofigirl"

type Presence interface {
	Playing(rec station.Record, since time.Time) error
	Paused(rec station.Record) error
	Clear() error
	Close() error
}

// Nop is used when presence is disabled.
type Nop struct{}

func (Nop) Playing(station.Record, time.Time) error { return nil }
func (Nop) Paused(station.Record) error             { return nil }
func (Nop) Clear() error                            { return nil }
func (Nop) Close() error                            { return nil }

// Discord talks to the local Discord client over its RPC socket. The
// connection is opened on first use so a missing Discord costs nothing
// until presence is actually needed.
type Discord struct {
	appID string
	log   zerolog.Logger

	mu       sync.Mutex
	loggedIn bool

	login       func(appID string) error
	setActivity func(client.Activity) error
	logout      func()
}

func NewDiscord(appID string, log zerolog.Logger) *Discord {
	return &Discord{
		appID:       appID,
		log:         log.With().Str("component", "presence").Logger(),
		login:       client.Login,
		setActivity: client.SetActivity,
		logout:      client.Logout,
	}
}

func (d *Discord) ensureLoginLocked() error {
	if d.loggedIn {
		return nil
	}
	if err := d.login(d.appID); err != nil {
		return fmt.Errorf("discord login: %w", err)
	}
	d.loggedIn = true
	d.log.Debug().Msg("connected to discord")
	return nil
}

func (d *Discord) update(activity client.Activity) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureLoginLocked(); err != nil {
		d.log.Warn().Err(err).Msg("discord presence unavailable")
		return err
	}
	if err := d.setActivity(activity); err != nil {
		d.log.Warn().Err(err).Msg("discord rpc error")
		// Discord may have restarted; log in again next time.
		d.loggedIn = false
		return err
	}
	return nil
}

func (d *Discord) Playing(rec station.Record, since time.Time) error {
	return d.update(activityFor(rec, since, false))
}

func (d *Discord) Paused(rec station.Record) error {
	return d.update(activityFor(rec, time.Time{}, true))
}

// Clear removes the activity without dropping the connection.
func (d *Discord) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.loggedIn {
		return nil
	}
	return d.setActivity(client.Activity{})
}

func (d *Discord) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loggedIn {
		d.logout()
		d.loggedIn = false
	}
	return nil
}

func activityFor(rec station.Record, since time.Time, paused bool) client.Activity {
	state := rec.Description
	if paused {
		state = "Paused"
	}

	activity := client.Activity{
		Type:       activityListening,
		Details:    "Listening to " + rec.Name,
		State:      state,
		LargeImage: largeImage,
		LargeText:  rec.Genre,
	}
	if !since.IsZero() {
		start := since
		activity.Timestamps = &client.Timestamps{Start: &start}
	}
	if rec.URL != "" {
		activity.Buttons = []*client.Button{{Label: "Listen to " + rec.Name, Url: rec.URL}}
	}
	return activity
}

var (
	_ Presence = Nop{}
	_ Presence = (*Discord)(nil)
)
