// Package network switches host connectivity on and off so tests can simulate
// a lost connection.
package network

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"ui_automation/domain/errs"
)

const defaultTimeout = 30 * time.Second

// Runner executes a command with stdin and returns its combined output
type Runner func(ctx context.Context, stdin string, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, stdin string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// Toggler turns the host network on and off
type Toggler struct {
	logger   *logrus.Logger
	password string
	goos     string
	run      Runner
}

// Option configures a Toggler
type Option func(*Toggler)

// WithPlatform - overrides runtime.GOOS
func WithPlatform(goos string) Option {
	return func(t *Toggler) { t.goos = goos }
}

// WithRunner - replaces command execution
func WithRunner(r Runner) Option {
	return func(t *Toggler) { t.run = r }
}

// NewToggler - creates a toggler; password is the local sudo password used on macOS
func NewToggler(password string, logger *logrus.Logger, opts ...Option) *Toggler {
	t := &Toggler{
		logger:   logger,
		password: password,
		goos:     runtime.GOOS,
		run:      execRunner,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Enable - brings the network back
func (t *Toggler) Enable(ctx context.Context) error {
	return t.toggle(ctx, true)
}

// Disable - cuts the network
func (t *Toggler) Disable(ctx context.Context) error {
	return t.toggle(ctx, false)
}

func (t *Toggler) toggle(ctx context.Context, enable bool) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}

	state := "off"
	if enable {
		state = "on"
	}

	var (
		out []byte
		err error
	)
	switch t.goos {
	case "darwin":
		if t.password == "" {
			return errs.InvalidArgumentf("local_password", "required to toggle the network on macOS")
		}
		out, err = t.run(ctx, t.password+"\n", "sudo", "-S", "networksetup", "-setnetworkserviceenabled", "Wi-Fi", state)
	case "linux":
		name := "disable_network"
		if enable {
			name = "enable_network"
		}
		out, err = t.run(ctx, "", name)
	default:
		t.logger.Warnf("%v", errs.New(errs.UnsupportedPlatform, fmt.Sprintf("network toggling is not supported on %s", t.goos)))
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to turn network %s: %w: %s", state, err, strings.TrimSpace(string(out)))
	}
	t.logger.Infof("Network turned %s", state)
	return nil
}
