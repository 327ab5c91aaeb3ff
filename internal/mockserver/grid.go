package mockserver

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	defaultGridSize = 40
	maxGridSize     = 100
)

type cell struct {
	Hex string `json:"hex"`
}

// decodeDataURL returns the payload of a base64 data URL.
func decodeDataURL(url string) ([]byte, error) {
	header, payload, ok := strings.Cut(url, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, errors.New("not a base64 data url")
	}
	return base64.StdEncoding.DecodeString(payload)
}

// sampleGrid splits img into size×size rectangles and averages each one.
// Images smaller than the grid produce one cell per pixel row/column available.
func sampleGrid(img image.Image, size int) []cell {
	bounds := img.Bounds()
	cols := min(size, bounds.Dx())
	rows := min(size, bounds.Dy())

	cells := make([]cell, 0, cols*rows)
	for row := 0; row < rows; row++ {
		y0 := bounds.Min.Y + row*bounds.Dy()/rows
		y1 := bounds.Min.Y + (row+1)*bounds.Dy()/rows

		for col := 0; col < cols; col++ {
			x0 := bounds.Min.X + col*bounds.Dx()/cols
			x1 := bounds.Min.X + (col+1)*bounds.Dx()/cols

			cells = append(cells, cell{Hex: average(img, x0, y0, x1, y1).Hex()})
		}
	}
	return cells
}

func average(img image.Image, x0, y0, x1, y1 int) colorful.Color {
	var r, g, b, n float64
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				// fully transparent
				continue
			}
			r += c.R
			g += c.G
			b += c.B
			n++
		}
	}
	if n == 0 {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return colorful.Color{R: r / n, G: g / n, B: b / n}.Clamped()
}

func (s *Server) analyzeGrid(c *gin.Context) {
	var body struct {
		Image    string `json:"image"`
		GridSize int    `json:"grid_size"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	data, err := decodeDataURL(body.Image)
	if err != nil {
		fail(c, http.StatusBadRequest, "Image must be a base64 data URL")
		return
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		fail(c, http.StatusUnprocessableEntity, fmt.Sprintf("Unsupported image: %s", err))
		return
	}

	size := body.GridSize
	if size <= 0 {
		size = defaultGridSize
	}
	size = min(size, maxGridSize)

	cells := sampleGrid(img, size)
	c.Header("X-Image-Format", format)
	c.JSON(http.StatusOK, gin.H{"count": len(cells), "cells": cells})
}
