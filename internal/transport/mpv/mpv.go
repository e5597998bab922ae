// Package mpv implements the transport adapter on top of an mpv
// subprocess controlled over its JSON IPC socket. Each adapter owns
// one mpv process playing one track; track changes always spawn a new
// process rather than reusing the old one.
package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/codgamerofficial/sonicstream/internal/core"
	"github.com/codgamerofficial/sonicstream/internal/transport"
)

const (
	connectRetries  = 50
	connectInterval = 100 * time.Millisecond
	pollInterval    = time.Second
	requestTimeout  = 2 * time.Second
)

// Factory creates mpv-backed adapters.
type Factory struct {
	// Binary is the mpv executable name or path. Defaults to "mpv".
	Binary string
}

// New spawns an mpv process for the track and connects to its IPC
// socket.
func (f *Factory) New(ctx context.Context, track core.Track) (transport.Adapter, error) {
	binary := f.Binary
	if binary == "" {
		binary = "mpv"
	}

	sock := filepath.Join(os.TempDir(), fmt.Sprintf("sonic-mpv-%d-%s.sock", os.Getpid(), track.ID))
	_ = os.Remove(sock)

	cmd := exec.CommandContext(ctx, binary,
		"--no-video",
		"--really-quiet",
		"--pause",
		"--input-ipc-server="+sock,
		track.WatchURL(),
	)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start mpv: %w", err)
	}

	conn, err := connect(ctx, sock)
	if err != nil {
		_ = cmd.Process.Kill()
		return nil, fmt.Errorf("failed to connect to mpv ipc: %w", err)
	}

	a := &adapter{
		trackID: track.ID,
		cmd:     cmd,
		conn:    conn,
		sock:    sock,
		events:  make(chan transport.Event, 16),
		pending: make(map[int64]chan *response),
		done:    make(chan struct{}),
	}

	a.loops.Add(2)
	go a.readLoop()
	go a.pollLoop()
	go a.waitLoop()

	return a, nil
}

func connect(ctx context.Context, sock string) (net.Conn, error) {
	var lastErr error
	for i := 0; i < connectRetries; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectInterval):
		}
		conn, err := net.Dial("unix", sock)
		if err == nil {
			return conn, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

type adapter struct {
	trackID string
	cmd     *exec.Cmd
	conn    net.Conn
	sock    string
	events  chan transport.Event

	mu      sync.Mutex
	nextID  int64
	pending map[int64]chan *response
	closed  bool

	loops sync.WaitGroup
	done  chan struct{}
}

type request struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

type response struct {
	Error     string          `json:"error"`
	Data      json.RawMessage `json:"data"`
	RequestID int64           `json:"request_id"`
	Event     string          `json:"event"`
	Reason    string          `json:"reason"`
}

// Play resumes playback.
func (a *adapter) Play() error {
	return a.setProperty("pause", false)
}

// Pause suspends playback.
func (a *adapter) Pause() error {
	return a.setProperty("pause", true)
}

// Seek jumps to the given fraction of the track duration.
func (a *adapter) Seek(fraction float64) error {
	if fraction < 0 {
		fraction = 0
	}
	if fraction >= 1 {
		fraction = 0.999
	}
	_, err := a.command("seek", fraction*100, "absolute-percent")
	return err
}

// SetVolume sets the volume; mpv speaks 0-100.
func (a *adapter) SetVolume(v float64) error {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return a.setProperty("volume", v*100)
}

// Events returns the backend event stream.
func (a *adapter) Events() <-chan transport.Event {
	return a.events
}

// Close kills the mpv process and stops event delivery. Backend errors
// racing with Close belong to a superseded track and are dropped.
func (a *adapter) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	close(a.done)
	_ = a.conn.Close()
	_ = a.cmd.Process.Kill()
	_ = os.Remove(a.sock)
	return nil
}

func (a *adapter) isClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

func (a *adapter) setProperty(name string, value any) error {
	_, err := a.command("set_property", name, value)
	return err
}

func (a *adapter) getFloat(name string) (float64, bool) {
	data, err := a.command("get_property", name)
	if err != nil || data == nil {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, false
	}
	return v, true
}

func (a *adapter) command(args ...any) (json.RawMessage, error) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil, fmt.Errorf("adapter closed")
	}
	a.nextID++
	id := a.nextID
	ch := make(chan *response, 1)
	a.pending[id] = ch
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		delete(a.pending, id)
		a.mu.Unlock()
	}()

	payload, err := json.Marshal(request{Command: args, RequestID: id})
	if err != nil {
		return nil, err
	}
	if _, err := a.conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("ipc write: %w", err)
	}

	select {
	case resp := <-ch:
		if resp.Error != "" && resp.Error != "success" {
			return nil, fmt.Errorf("mpv: %s", resp.Error)
		}
		return resp.Data, nil
	case <-a.done:
		return nil, fmt.Errorf("adapter closed")
	case <-time.After(requestTimeout):
		return nil, fmt.Errorf("mpv ipc timeout")
	}
}

// readLoop dispatches IPC responses to waiting commands and turns mpv
// events into transport events.
func (a *adapter) readLoop() {
	defer a.loops.Done()
	scanner := bufio.NewScanner(a.conn)
	for scanner.Scan() {
		var resp response
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			continue
		}

		if resp.RequestID != 0 {
			a.mu.Lock()
			ch, ok := a.pending[resp.RequestID]
			a.mu.Unlock()
			if ok {
				r := resp
				ch <- &r
			}
			continue
		}

		switch resp.Event {
		case "end-file":
			if resp.Reason == "eof" {
				a.emit(transport.EndedEvent{TrackID: a.trackID})
			} else if resp.Reason == "error" && !a.isClosed() {
				a.emit(transport.ErrorEvent{
					TrackID: a.trackID,
					Err:     fmt.Errorf("mpv playback error"),
				})
			}
		}
	}
}

// pollLoop samples position and duration once per second and emits
// fraction-based progress events.
func (a *adapter) pollLoop() {
	defer a.loops.Done()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	durationKnown := false
	for {
		select {
		case <-a.done:
			return
		case <-ticker.C:
		}

		if !durationKnown {
			if d, ok := a.getFloat("duration"); ok && d > 0 {
				durationKnown = true
				a.emit(transport.DurationEvent{TrackID: a.trackID, Seconds: d})
			}
		}

		if pct, ok := a.getFloat("percent-pos"); ok {
			a.emit(transport.ProgressEvent{TrackID: a.trackID, Fraction: pct / 100})
		}
	}
}

// waitLoop reaps the mpv process and closes the event stream once the
// IPC loops have stopped emitting.
func (a *adapter) waitLoop() {
	_ = a.cmd.Wait()
	<-a.done
	a.loops.Wait()
	close(a.events)
}

func (a *adapter) emit(ev transport.Event) {
	if a.isClosed() {
		return
	}
	select {
	case a.events <- ev:
	default:
		// Drop rather than block the IPC loops; the next poll
		// supersedes a missed progress sample anyway.
	}
}

var _ transport.Factory = (*Factory)(nil)
var _ transport.Adapter = (*adapter)(nil)
