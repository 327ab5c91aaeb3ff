package mockserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/samber/lo"
)

type rgb struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

type color struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Hex  string `json:"hex"`
	RGB  rgb    `json:"rgb"`
}

type palette struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Colors []color `json:"colors"`
}

// AddPalette stores a palette named name and returns its id.
func (s *Server) AddPalette(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addPalette(name)
}

// addPalette requires s.mu.
func (s *Server) addPalette(name string) int {
	p := &palette{ID: s.nextID, Name: name, Colors: []color{}}
	s.nextID++
	s.palettes = append(s.palettes, p)
	return p.ID
}

// AddColor appends a color to palette paletteID and returns the color id.
func (s *Server) AddColor(paletteID int, name, hex string) (int, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", hex, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findPalette(paletteID)
	if !ok {
		return 0, fmt.Errorf("palette %d not found", paletteID)
	}

	r, g, b := c.RGB255()
	added := color{
		ID:   s.nextColor,
		Name: name,
		Hex:  c.Hex(),
		RGB:  rgb{R: int(r), G: int(g), B: int(b)},
	}
	s.nextColor++
	p.Colors = append(p.Colors, added)
	return added.ID, nil
}

// Seed fills the server with a few sample palettes.
func (s *Server) Seed() {
	samples := []struct {
		name   string
		colors [][2]string
	}{
		{"Sunset", [][2]string{{"Ember", "#ff5e3a"}, {"Apricot", "#ff9a44"}, {"Dusk", "#6a3093"}}},
		{"Lagoon", [][2]string{{"Reef", "#00b4d8"}, {"Shallows", "#90e0ef"}, {"Deep", "#03045e"}}},
		{"Orchard", [][2]string{{"Leaf", "#6a994e"}, {"Pear", "#d4e09b"}}},
	}

	for _, sample := range samples {
		id := s.AddPalette(sample.name)
		for _, c := range sample.colors {
			lo.Must(s.AddColor(id, c[0], c[1]))
		}
	}
}

func (s *Server) findPalette(id int) (*palette, bool) {
	return lo.Find(s.palettes, func(p *palette) bool { return p.ID == id })
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func (s *Server) listPalettes(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.JSON(http.StatusOK, lo.Map(s.palettes, func(p *palette, _ int) palette {
		return palette{ID: p.ID, Name: p.Name, Colors: append([]color{}, p.Colors...)}
	}))
}

func (s *Server) createPalette(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	name := strings.TrimSpace(body.Name)
	if name == "" {
		fail(c, http.StatusBadRequest, "Palette name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if lo.ContainsBy(s.palettes, func(p *palette) bool { return strings.EqualFold(p.Name, name) }) {
		fail(c, http.StatusConflict, "A palette with that name already exists")
		return
	}

	id := s.addPalette(name)
	c.JSON(http.StatusCreated, gin.H{"id": id, "name": name})
}

func (s *Server) deletePalette(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.findPalette(id); !found {
		fail(c, http.StatusNotFound, "Palette not found")
		return
	}

	s.palettes = lo.Reject(s.palettes, func(p *palette, _ int) bool { return p.ID == id })
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (s *Server) deleteColor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	colorID, ok := pathID(c, "colorId")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, found := s.findPalette(id)
	if !found {
		fail(c, http.StatusNotFound, "Palette not found")
		return
	}
	if !lo.ContainsBy(p.Colors, func(col color) bool { return col.ID == colorID }) {
		fail(c, http.StatusNotFound, "Color not found")
		return
	}

	p.Colors = lo.Reject(p.Colors, func(col color, _ int) bool { return col.ID == colorID })
	c.JSON(http.StatusOK, gin.H{"deleted": colorID})
}
