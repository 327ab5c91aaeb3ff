// Package grid samples an image into a grid of dominant colors through the color service.
package grid

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/colorcarnival/carnival/alert"
	"github.com/colorcarnival/carnival/constant"
	"github.com/colorcarnival/carnival/filesystem"
	"github.com/colorcarnival/carnival/log"
	"github.com/colorcarnival/carnival/network"
	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const pathAnalyze = "/api/grid/analyze"

// Alert messages.
const (
	MsgNoImage   = "Upload an image first 🖼️"
	MsgAnalyzing = "Analyzing image... ⏳"
	MsgFailed    = "Analysis failed 💔"
)

// ErrInFlight is returned when an analysis is already running.
var ErrInFlight = errors.New("analysis already in progress")

// Cell is one sampled square.
type Cell struct {
	Hex string `json:"hex"`
}

// Result is a completed analysis.
type Result struct {
	// Count is the number of cells the service sampled.
	Count int `json:"count"`
	// Cells holds at most constant.GridRenderLimit cells, in service order.
	Cells []Cell `json:"cells"`
}

// Request is the analysis payload.
type Request struct {
	Image    string `json:"image"`
	GridSize int    `json:"grid_size"`
}

// Analyzer runs one analysis at a time and keeps the last rendered grid.
type Analyzer struct {
	caller network.Caller
	alerts alert.Alerter

	mu     sync.Mutex
	busy   bool
	result *Result
}

// New creates an analyzer.
func New(caller network.Caller, alerts alert.Alerter) *Analyzer {
	return &Analyzer{caller: caller, alerts: alerts}
}

// DataURL encodes data as a base64 data URL with its detected media type.
func DataURL(data []byte) string {
	mime := mimetype.Detect(data)
	return fmt.Sprintf("data:%s;base64,%s", mime.String(), base64.StdEncoding.EncodeToString(data))
}

// Result returns the last successful analysis, or nil.
func (a *Analyzer) Result() *Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result
}

// Busy reports whether an analysis is running.
func (a *Analyzer) Busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.busy
}

// Analyze reads the image at path and asks the service to sample it.
// Without a readable file nothing is sent. On failure the previous grid stays as it was.
func (a *Analyzer) Analyze(ctx context.Context, path string) (*Result, error) {
	if path == "" {
		a.alerts.Show(MsgNoImage, false)
		return nil, nil
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		log.Warnf("reading image %q: %s", path, err)
		a.alerts.Show(MsgNoImage, false)
		return nil, nil
	}

	a.mu.Lock()
	if a.busy {
		a.mu.Unlock()
		log.With(logrus.Fields{"path": path}).Debug("analysis rejected, already in flight")
		return nil, ErrInFlight
	}
	a.busy = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.busy = false
		a.mu.Unlock()
	}()

	a.alerts.Show(MsgAnalyzing, true)

	resp, err := a.caller.Call(ctx, http.MethodPost, pathAnalyze, Request{
		Image:    DataURL(data),
		GridSize: constant.GridSize,
	})
	if err != nil {
		a.alerts.Show(MsgFailed, false)
		return nil, err
	}
	if !resp.OK {
		a.alerts.Show(MsgFailed, false)
		return nil, fmt.Errorf("analyze: status %d", resp.Status)
	}

	var result Result
	if err := resp.Decode(&result); err != nil {
		a.alerts.Show(MsgFailed, false)
		return nil, fmt.Errorf("decode analysis: %w", err)
	}

	result.Cells = lo.Subset(result.Cells, 0, constant.GridRenderLimit)

	a.mu.Lock()
	a.result = &result
	a.mu.Unlock()

	a.alerts.Show(fmt.Sprintf("Analyzed %d squares 🎨", result.Count), true)
	return &result, nil
}
