// Package server serves an interactive noise preview over SSH.
package server

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"
	"github.com/rs/zerolog"

	"noisekit/internal/config"
	"noisekit/internal/random"
	"noisekit/internal/render"
)

// SSHServer wraps the SSH listener and per-session previews.
type SSHServer struct {
	addr    string
	hostKey string
	preset  config.Preset
	log     zerolog.Logger
}

// NewSSHServer creates a new SSH server bound to the given address. Every
// session starts from preset.
func NewSSHServer(addr, hostKey string, preset config.Preset, log zerolog.Logger) *SSHServer {
	return &SSHServer{
		addr:    addr,
		hostKey: hostKey,
		preset:  preset,
		log:     log,
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	s.log.Info().Str("addr", s.addr).Str("preset", s.preset.Name).Msg("SSH server listening")
	return server.ListenAndServe()
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}
	log := s.log.With().Str("user", username).Str("remote", sess.RemoteAddr().String()).Logger()
	log.Info().Msg("session opened")
	defer log.Info().Msg("session closed")

	pv := newPreview(s.preset)
	reseeder := random.NewMT()
	engine := render.NewEngine(ptyReq.Window.Width, ptyReq.Window.Height)

	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	io.WriteString(sess, render.ClearScreen())
	defer func() {
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	actionCh := make(chan action, 16)
	quitCh := make(chan struct{})

	// Goroutine: read input
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				close(quitCh)
				return
			}
			for _, a := range parseInput(buf[:n]) {
				if a == actionQuit {
					close(quitCh)
					return
				}
				select {
				case actionCh <- a:
				default:
				}
			}
		}
	}()

	draw := func() {
		w, h := engine.Size()
		vp := render.NewViewport(w, h, render.HUDRows, pv.centerX, pv.centerY, pv.span)
		if out := engine.Render(pv.frame(vp), pv.ramp(), pv.hud()); out != "" {
			io.WriteString(sess, out)
		}
	}
	draw()

	for {
		select {
		case <-quitCh:
			return
		case <-sess.Context().Done():
			return
		case win, ok := <-winCh:
			if !ok {
				winCh = nil
				continue
			}
			engine.Resize(win.Width, win.Height)
			io.WriteString(sess, render.ClearScreen())
			draw()
		case a := <-actionCh:
			if pv.apply(a, reseeder.Uint32) {
				if a == actionReseed {
					log.Debug().Uint32("seed", pv.seed).Msg("reseeded")
				}
				draw()
			}
		}
	}
}

type action int

const (
	actionNone action = iota
	actionUp
	actionDown
	actionLeft
	actionRight
	actionZoomIn
	actionZoomOut
	actionOctavesUp
	actionOctavesDown
	actionMode
	actionReseed
	actionQuit
)

// parseInput converts raw bytes into preview actions.
// Handles WASD, arrow key escape sequences, zoom, octaves, mode, reseed, Q and Ctrl-C.
func parseInput(data []byte) []action {
	var actions []action
	i := 0
	for i < len(data) {
		// Check for escape sequences (arrow keys)
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			switch data[i+2] {
			case 'A':
				actions = append(actions, actionUp)
			case 'B':
				actions = append(actions, actionDown)
			case 'C':
				actions = append(actions, actionRight)
			case 'D':
				actions = append(actions, actionLeft)
			}
			i += 3
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'w', 'W':
			actions = append(actions, actionUp)
		case 's', 'S':
			actions = append(actions, actionDown)
		case 'a', 'A':
			actions = append(actions, actionLeft)
		case 'd', 'D':
			actions = append(actions, actionRight)
		case '+', '=':
			actions = append(actions, actionZoomIn)
		case '-', '_':
			actions = append(actions, actionZoomOut)
		case ']':
			actions = append(actions, actionOctavesUp)
		case '[':
			actions = append(actions, actionOctavesDown)
		case 'm', 'M':
			actions = append(actions, actionMode)
		case 'r', 'R':
			actions = append(actions, actionReseed)
		case 'q', 'Q':
			actions = append(actions, actionQuit)
		case 3: // Ctrl-C
			actions = append(actions, actionQuit)
		}
		i += size
	}
	return actions
}
