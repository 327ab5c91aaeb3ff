// Package pressure asks the color service how far an actual color drifts from a target.
package pressure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/colorcarnival/carnival/alert"
	"github.com/colorcarnival/carnival/color"
	"github.com/colorcarnival/carnival/constant"
	"github.com/colorcarnival/carnival/log"
	"github.com/colorcarnival/carnival/network"
	"github.com/sirupsen/logrus"
)

const pathPressure = "/api/pressure"

// Alert messages.
const (
	MsgFailed     = "Error computing pressure 💔"
	MsgCalculated = "Pressure calculated ✅"
)

// ErrInFlight is returned when a computation is already running.
var ErrInFlight = errors.New("pressure computation already in progress")

// Request is the computation payload.
type Request struct {
	Target RGB `json:"target"`
	Actual RGB `json:"actual"`
}

// Result holds the service's percentages.
type Result struct {
	SaturationDifference float64 `json:"saturation_difference"`
	PressureValue        float64 `json:"pressure_value"`
}

// SaturationText renders the saturation difference as a percentage.
func (r Result) SaturationText() string {
	return formatNumber(r.SaturationDifference) + "%"
}

// PressureText renders the pressure value as a percentage.
func (r Result) PressureText() string {
	return formatNumber(r.PressureValue) + "%"
}

// BarWidth is the fill of the pressure bar in percent. It equals the pressure value.
func (r Result) BarWidth() float64 {
	return r.PressureValue
}

// High reports whether the pressure is above the threshold. The threshold itself is low.
func (r Result) High() bool {
	return r.PressureValue > constant.PressureHighThreshold
}

// BarColor is the fill color of the pressure bar.
func (r Result) BarColor() lipgloss.Color {
	if r.High() {
		return color.PressureHigh
	}
	return color.PressureLow
}

// Calculator runs one computation at a time and keeps the last result.
type Calculator struct {
	caller network.Caller
	alerts alert.Alerter

	mu     sync.Mutex
	busy   bool
	result *Result
}

// New creates a calculator.
func New(caller network.Caller, alerts alert.Alerter) *Calculator {
	return &Calculator{caller: caller, alerts: alerts}
}

// Result returns the last successful computation, or nil.
func (c *Calculator) Result() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Compute converts target and actual to channels and asks the service for the pressure.
// Malformed input is forwarded as is.
func (c *Calculator) Compute(ctx context.Context, target, actual string) (*Result, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		log.With(logrus.Fields{"target": target, "actual": actual}).Debug("pressure rejected, already in flight")
		return nil, ErrInFlight
	}
	c.busy = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	resp, err := c.caller.Call(ctx, http.MethodPost, pathPressure, Request{
		Target: HexToRGB(target),
		Actual: HexToRGB(actual),
	})
	if err != nil {
		c.alerts.Show(MsgFailed, false)
		return nil, err
	}
	if !resp.OK {
		c.alerts.Show(MsgFailed, false)
		return nil, fmt.Errorf("pressure: status %d", resp.Status)
	}

	var result Result
	if err := resp.Decode(&result); err != nil {
		c.alerts.Show(MsgFailed, false)
		return nil, fmt.Errorf("decode pressure: %w", err)
	}

	c.mu.Lock()
	c.result = &result
	c.mu.Unlock()

	c.alerts.Show(MsgCalculated, true)
	return &result, nil
}
