package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Bridge talks to an external model process over a one-shot JSON protocol:
// the request is written to stdin, the response read from stdout. The same
// mechanism serves both the semantic text encoder and the satisfaction
// regressor; which one depends on the configured command.
type Bridge struct {
	command string
	args    []string
	timeout time.Duration
	logger  *logrus.Logger
}

type encodeRequest struct {
	Texts []string `json:"texts"`
}

type encodeResponse struct {
	Vectors [][]float64 `json:"vectors"`
	Error   string      `json:"error,omitempty"`
}

type predictRequest struct {
	Features [][]float64 `json:"features"`
}

type predictResponse struct {
	Scores []float64 `json:"scores"`
	Error  string    `json:"error,omitempty"`
}

// NewBridge builds a bridge from a command line such as
// "python3 scripts/encoder.py".
func NewBridge(command string, logger *logrus.Logger) *Bridge {
	fields := strings.Fields(command)
	b := &Bridge{timeout: 30 * time.Second, logger: logger}
	if len(fields) > 0 {
		b.command = fields[0]
		b.args = fields[1:]
	}
	return b
}

// Encode returns unit-normalized vectors for the given texts.
func (b *Bridge) Encode(ctx context.Context, texts []string) ([][]float64, error) {
	var resp encodeResponse
	if err := b.roundTrip(ctx, encodeRequest{Texts: texts}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("encoder error: %s", resp.Error)
	}
	return resp.Vectors, nil
}

// Predict returns one satisfaction score per feature row.
func (b *Bridge) Predict(features [][]float64) ([]float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	var resp predictResponse
	if err := b.roundTrip(ctx, predictRequest{Features: features}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("scorer error: %s", resp.Error)
	}
	return resp.Scores, nil
}

func (b *Bridge) roundTrip(ctx context.Context, request, response interface{}) error {
	if b.command == "" {
		return fmt.Errorf("no model command configured")
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal model request: %w", err)
	}

	cmd := exec.CommandContext(ctx, b.command, b.args...)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if b.logger != nil {
			b.logger.WithError(err).WithField("stderr", stderr.String()).Error("Model process failed")
		}
		return fmt.Errorf("model process failed: %w", err)
	}

	if b.logger != nil {
		b.logger.WithFields(logrus.Fields{
			"command": b.command,
			"latency": time.Since(start),
		}).Debug("Model round trip completed")
	}

	if err := json.Unmarshal(stdout.Bytes(), response); err != nil {
		return fmt.Errorf("failed to decode model response: %w", err)
	}
	return nil
}
