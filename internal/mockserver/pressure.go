package mockserver

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lucasb-eyer/go-colorful"
)

// channels mirrors the client payload. A channel the client could not parse arrives as null.
type channels struct {
	R *float64 `json:"r"`
	G *float64 `json:"g"`
	B *float64 `json:"b"`
}

func (ch channels) color() (colorful.Color, bool) {
	if ch.R == nil || ch.G == nil || ch.B == nil {
		return colorful.Color{}, false
	}
	return colorful.Color{R: *ch.R / 255, G: *ch.G / 255, B: *ch.B / 255}.Clamped(), true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// pressure compares actual against target. The saturation difference is the absolute
// HSV saturation gap and the pressure is the CIEDE2000 distance, both as percentages.
func pressure(target, actual colorful.Color) (saturation, value float64) {
	_, st, _ := target.Hsv()
	_, sa, _ := actual.Hsv()

	saturation = round2(math.Abs(st-sa) * 100)
	value = round2(math.Min(target.DistanceCIEDE2000(actual)*100, 100))
	return
}

func (s *Server) computePressure(c *gin.Context) {
	var body struct {
		Target channels `json:"target"`
		Actual channels `json:"actual"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	target, ok := body.Target.color()
	if !ok {
		fail(c, http.StatusBadRequest, "Invalid target color")
		return
	}
	actual, ok := body.Actual.color()
	if !ok {
		fail(c, http.StatusBadRequest, "Invalid actual color")
		return
	}

	saturation, value := pressure(target, actual)
	c.JSON(http.StatusOK, gin.H{
		"saturation_difference": saturation,
		"pressure_value":        value,
	})
}
