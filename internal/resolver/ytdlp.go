// Package resolver turns video-hosting links into directly playable media
// URLs by running yt-dlp as a subprocess.
package resolver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/rs/zerolog"
)

const (
	DefaultBinary         = "yt-dlp"
	DefaultResolveTimeout = 30 * time.Second
	DefaultVersionTimeout = 5 * time.Second
	DefaultFormat         = "bestaudio/best"

	// LofiGirlStreams lists the Lofi Girl channel's streams, live ones first.
	LofiGirlStreams = "https://www.youtube.com/@LofiGirl/streams"
	// DefaultLiveLimit caps how many live streams ListLive returns.
	DefaultLiveLimit = 10
	liveScanDepth    = 30
	watchURL         = "https://www.youtube.com/watch?v="

	unknownTitle = "Unknown Title"

	// waitDelay bounds how long Run waits on pipes after the process is killed.
	waitDelay = time.Second
)

var execCommand = exec.CommandContext

// Options configures a Resolver. Zero values fall back to the defaults above.
type Options struct {
	Binary         string
	ResolveTimeout time.Duration
	VersionTimeout time.Duration
	Format         string
	Retries        int
	Logger         zerolog.Logger
}

type Resolver struct {
	binary         string
	resolveTimeout time.Duration
	versionTimeout time.Duration
	format         string
	retries        int
	log            zerolog.Logger
}

// StreamInfo is the subset of yt-dlp metadata shown to users.
type StreamInfo struct {
	URL         string
	Title       string
	Thumbnail   string
	Description string
	IsLive      bool
	FormatID    string
	FormatNote  string
}

func New(opts Options) *Resolver {
	r := &Resolver{
		binary:         opts.Binary,
		resolveTimeout: opts.ResolveTimeout,
		versionTimeout: opts.VersionTimeout,
		format:         opts.Format,
		retries:        opts.Retries,
		log:            opts.Logger.With().Str("component", "resolver").Logger(),
	}
	if r.binary == "" {
		r.binary = DefaultBinary
	}
	if r.resolveTimeout <= 0 {
		r.resolveTimeout = DefaultResolveTimeout
	}
	if r.versionTimeout <= 0 {
		r.versionTimeout = DefaultVersionTimeout
	}
	if r.format == "" {
		r.format = DefaultFormat
	}
	return r
}

// ResolveTimeout is the hard limit on one Resolve or Info run.
func (r *Resolver) ResolveTimeout() time.Duration {
	return r.resolveTimeout
}

// FormatForQuality maps an audio quality tag onto a yt-dlp format selector.
func FormatForQuality(quality string) string {
	switch strings.ToLower(quality) {
	case "low":
		return "worstaudio/worst"
	case "medium":
		return "bestaudio[abr<=128]/bestaudio/best"
	default:
		return DefaultFormat
	}
}

// NeedsResolution reports whether rawURL points at a video-hosting page
// rather than a direct media stream.
func NeedsResolution(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")
	host = strings.TrimPrefix(host, "music.")
	return host == "youtube.com" || host == "youtu.be"
}

// Resolve returns a direct media URL for rawURL. With audioOnly the
// configured audio format selector is used, otherwise "best".
func (r *Resolver) Resolve(ctx context.Context, rawURL string, audioOnly bool) (string, error) {
	format := "best"
	if audioOnly {
		format = r.format
	}

	args := r.baseArgs("--get-url", "-f", format)
	args = append(args, "--", rawURL)

	out, err := r.run(ctx, r.resolveTimeout, rawURL, args...)
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			r.log.Debug().Str("url", rawURL).Msg("stream url resolved")
			return line, nil
		}
	}
	return "", &Error{Kind: ErrExtractionFailed, URL: rawURL, Detail: "empty output"}
}

// Info fetches stream metadata. Optional fields missing from the
// document are left empty or false.
func (r *Resolver) Info(ctx context.Context, rawURL string) (StreamInfo, error) {
	args := r.baseArgs("--dump-json", "--skip-download", "-f", r.format)
	args = append(args, "--", rawURL)

	out, err := r.run(ctx, r.resolveTimeout, rawURL, args...)
	if err != nil {
		return StreamInfo{}, err
	}

	info, err := parseInfo(out)
	if err != nil {
		return StreamInfo{}, &Error{Kind: ErrExtractionFailed, URL: rawURL, Detail: "invalid metadata", Err: err}
	}
	return info, nil
}

// LiveStream is a channel entry that is broadcasting now.
type LiveStream struct {
	ID    string
	Title string
	URL   string
}

// ListLive returns up to limit streams of channelURL that are live now. Only
// the first entries of the channel listing are inspected.
func (r *Resolver) ListLive(ctx context.Context, channelURL string, limit int) ([]LiveStream, error) {
	if limit <= 0 {
		limit = DefaultLiveLimit
	}
	args := []string{"--no-warnings", "--flat-playlist", "--dump-json", "--playlist-end", strconv.Itoa(liveScanDepth)}
	if r.retries > 0 {
		args = append(args, "--retries", strconv.Itoa(r.retries))
	}
	args = append(args, "--", channelURL)

	out, err := r.run(ctx, r.resolveTimeout, channelURL, args...)
	if err != nil {
		return nil, err
	}
	streams := parseLiveEntries(out, limit)
	r.log.Debug().Str("channel", channelURL).Int("live", len(streams)).Msg("channel scanned")
	return streams, nil
}

func parseLiveEntries(out []byte, limit int) []LiveStream {
	var streams []LiveStream
	for _, line := range bytes.Split(out, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		status, _ := jsonparser.GetString(line, "live_status")
		live, _ := jsonparser.GetBoolean(line, "is_live")
		if status != "is_live" && !live {
			continue
		}
		id, err := jsonparser.GetString(line, "id")
		if err != nil || id == "" {
			continue
		}

		stream := LiveStream{ID: id, Title: unknownTitle, URL: watchURL + id}
		if title, err := jsonparser.GetString(line, "title"); err == nil && title != "" {
			stream.Title = title
		}
		if u, err := jsonparser.GetString(line, "url"); err == nil && NeedsResolution(u) {
			stream.URL = u
		}
		streams = append(streams, stream)
		if len(streams) == limit {
			break
		}
	}
	return streams
}

// Version runs "yt-dlp --version" and returns the reported version.
func (r *Resolver) Version(ctx context.Context) (string, error) {
	out, err := r.run(ctx, r.versionTimeout, "", "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Installed reports whether Version succeeds.
func (r *Resolver) Installed(ctx context.Context) bool {
	_, err := r.Version(ctx)
	return err == nil
}

func (r *Resolver) baseArgs(args ...string) []string {
	base := []string{"--no-warnings", "--no-playlist", "--playlist-items", "1"}
	if r.retries > 0 {
		base = append(base, "--retries", strconv.Itoa(r.retries))
	}
	return append(base, args...)
}

func (r *Resolver) run(ctx context.Context, timeout time.Duration, rawURL string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := execCommand(ctx, r.binary, args...)
	killGroup(cmd)
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	if stderr.Len() > 0 {
		r.log.Debug().Strs("args", args).Str("stderr", strings.TrimSpace(stderr.String())).Msg("yt-dlp stderr")
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		r.log.Warn().Str("url", rawURL).Dur("elapsed", time.Since(start)).Msg("yt-dlp timed out")
		return nil, &Error{Kind: ErrTimeout, URL: rawURL, Detail: fmt.Sprintf("no result after %s", timeout), Err: ctx.Err()}
	case errors.Is(ctx.Err(), context.Canceled):
		return nil, &Error{Kind: ErrExtractionFailed, URL: rawURL, Err: ctx.Err()}
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return nil, &Error{Kind: ErrNotInstalled, URL: rawURL, Detail: r.binary, Err: err}
	case err != nil:
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		r.log.Warn().Str("url", rawURL).Err(err).Msg("yt-dlp failed")
		return nil, &Error{Kind: ErrExtractionFailed, URL: rawURL, Detail: detail, Err: err}
	}

	out := bytes.TrimSpace(stdout.Bytes())
	if len(out) == 0 {
		return nil, &Error{Kind: ErrExtractionFailed, URL: rawURL, Detail: "empty output"}
	}
	return out, nil
}

func parseInfo(data []byte) (StreamInfo, error) {
	_, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return StreamInfo{}, err
	}
	if dataType != jsonparser.Object {
		return StreamInfo{}, fmt.Errorf("expected object, got %s", dataType)
	}

	info := StreamInfo{Title: unknownTitle}
	info.URL, _ = jsonparser.GetString(data, "url")
	if title, err := jsonparser.GetString(data, "title"); err == nil && title != "" {
		info.Title = title
	}
	info.Thumbnail, _ = jsonparser.GetString(data, "thumbnail")
	info.Description, _ = jsonparser.GetString(data, "description")
	info.IsLive, _ = jsonparser.GetBoolean(data, "is_live")
	info.FormatID, _ = jsonparser.GetString(data, "format_id")
	info.FormatNote, _ = jsonparser.GetString(data, "format_note")

	if info.URL == "" {
		// merged formats carry their urls per requested format
		_, _ = jsonparser.ArrayEach(data, func(value []byte, _ jsonparser.ValueType, _ int, _ error) {
			if info.URL != "" {
				return
			}
			if u, err := jsonparser.GetString(value, "url"); err == nil {
				info.URL = u
			}
		}, "requested_formats")
	}
	return info, nil
}
