package mockserver

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	stdcolor "image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/colorcarnival/carnival/alert"
	"github.com/colorcarnival/carnival/network"
	carnivalpalette "github.com/colorcarnival/carnival/palette"
	pressurepkg "github.com/colorcarnival/carnival/pressure"
	"github.com/gin-gonic/gin"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func pngDataURL(t *testing.T, img image.Image) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// =============================================================================
// Palettes
// =============================================================================

func TestListPalettes_EmptyIsArray(t *testing.T) {
	w := do(t, New(), http.MethodGet, "/api/palettes", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCreatePalette_ReturnsID(t *testing.T) {
	s := New()

	w := do(t, s, http.MethodPost, "/api/palettes", gin.H{"name": "  Sunset "})
	require.Equal(t, http.StatusCreated, w.Code)

	created := decode[struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}](t, w)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Sunset", created.Name)

	list := decode[[]palette](t, do(t, s, http.MethodGet, "/api/palettes", nil))
	require.Len(t, list, 1)
	assert.Equal(t, "Sunset", list[0].Name)
	assert.Empty(t, list[0].Colors)
}

func TestCreatePalette_Rejections(t *testing.T) {
	s := New()
	s.AddPalette("Sunset")

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"blank name", gin.H{"name": "   "}, http.StatusBadRequest},
		{"duplicate name", gin.H{"name": "sunset"}, http.StatusConflict},
		{"not an object", []int{1}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/api/palettes", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, decode[map[string]string](t, w)["error"])
		})
	}
}

func TestCreatePalette_ConcurrentDuplicates(t *testing.T) {
	s := New()
	handler := s.Handler()

	const attempts = 16
	codes := make([]int, attempts)

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/palettes", strings.NewReader(`{"name":"Sunset"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			codes[i] = w.Code
		}()
	}
	wg.Wait()

	created := 0
	for _, code := range codes {
		if code == http.StatusCreated {
			created++
		} else {
			assert.Equal(t, http.StatusConflict, code)
		}
	}
	assert.Equal(t, 1, created)
	assert.Len(t, decode[[]palette](t, do(t, s, http.MethodGet, "/api/palettes", nil)), 1)
}

func TestDeletePalette(t *testing.T) {
	s := New()
	id := s.AddPalette("Sunset")
	s.AddPalette("Lagoon")

	w := do(t, s, http.MethodDelete, "/api/palettes/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	list := decode[[]palette](t, do(t, s, http.MethodGet, "/api/palettes", nil))
	require.Len(t, list, 1)
	assert.NotEqual(t, id, list[0].ID)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, "/api/palettes/1", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodDelete, "/api/palettes/abc", nil).Code)
}

func TestDeleteColor(t *testing.T) {
	s := New()
	id := s.AddPalette("Sunset")
	ember, err := s.AddColor(id, "Ember", "#ff5e3a")
	require.NoError(t, err)
	_, err = s.AddColor(id, "Dusk", "#6a3093")
	require.NoError(t, err)

	w := do(t, s, http.MethodDelete, "/api/palettes/1/colors/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	list := decode[[]palette](t, do(t, s, http.MethodGet, "/api/palettes", nil))
	require.Len(t, list[0].Colors, 1)
	assert.Equal(t, "Dusk", list[0].Colors[0].Name)
	assert.NotEqual(t, ember, list[0].Colors[0].ID)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, "/api/palettes/1/colors/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, "/api/palettes/9/colors/2", nil).Code)
}

func TestAddColor_StoresChannels(t *testing.T) {
	s := New()
	id := s.AddPalette("Sunset")

	_, err := s.AddColor(id, "Ember", "#FF5E3A")
	require.NoError(t, err)

	list := decode[[]palette](t, do(t, s, http.MethodGet, "/api/palettes", nil))
	assert.Equal(t, "#ff5e3a", list[0].Colors[0].Hex)
	assert.Equal(t, rgb{R: 255, G: 94, B: 58}, list[0].Colors[0].RGB)

	_, err = s.AddColor(id, "Bad", "not a color")
	assert.Error(t, err)
	_, err = s.AddColor(42, "Orphan", "#000000")
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	s := New()
	s.Seed()

	list := decode[[]palette](t, do(t, s, http.MethodGet, "/api/palettes", nil))
	require.Len(t, list, 3)
	assert.Equal(t, "Sunset", list[0].Name)
	assert.Len(t, list[0].Colors, 3)
}

// =============================================================================
// Grid analysis
// =============================================================================

func TestAnalyzeGrid_AveragesCells(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := stdcolor.RGBA{R: 255, A: 255}
			if y >= 2 {
				c = stdcolor.RGBA{B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}

	w := do(t, New(), http.MethodPost, "/api/grid/analyze", gin.H{
		"image":     pngDataURL(t, img),
		"grid_size": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png", w.Header().Get("X-Image-Format"))

	result := decode[struct {
		Count int    `json:"count"`
		Cells []cell `json:"cells"`
	}](t, w)
	assert.Equal(t, 4, result.Count)
	assert.Equal(t, []cell{{"#ff0000"}, {"#ff0000"}, {"#0000ff"}, {"#0000ff"}}, result.Cells)
}

func TestAnalyzeGrid_CapsToImageSize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))

	w := do(t, New(), http.MethodPost, "/api/grid/analyze", gin.H{"image": pngDataURL(t, img)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 6.0, decode[map[string]any](t, w)["count"])
}

func TestAnalyzeGrid_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		image  string
		status int
	}{
		{"not a data url", "hello", http.StatusBadRequest},
		{"bad base64", "data:image/png;base64,%%%", http.StatusBadRequest},
		{"not an image", "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("plain")), http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, New(), http.MethodPost, "/api/grid/analyze", gin.H{"image": tt.image})
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

// =============================================================================
// Pressure
// =============================================================================

func TestComputePressure(t *testing.T) {
	s := New()

	same := do(t, s, http.MethodPost, "/api/pressure", gin.H{
		"target": gin.H{"r": 255, "g": 0, "b": 0},
		"actual": gin.H{"r": 255, "g": 0, "b": 0},
	})
	require.Equal(t, http.StatusOK, same.Code)
	assert.JSONEq(t, `{"saturation_difference":0,"pressure_value":0}`, same.Body.String())

	gray := do(t, s, http.MethodPost, "/api/pressure", gin.H{
		"target": gin.H{"r": 255, "g": 0, "b": 0},
		"actual": gin.H{"r": 128, "g": 128, "b": 128},
	})
	require.Equal(t, http.StatusOK, gray.Code)

	result := decode[map[string]float64](t, gray)
	assert.Equal(t, 100.0, result["saturation_difference"])
	assert.Greater(t, result["pressure_value"], 0.0)
	assert.LessOrEqual(t, result["pressure_value"], 100.0)
}

func TestComputePressure_NullChannel(t *testing.T) {
	w := do(t, New(), http.MethodPost, "/api/pressure", pressurepkg.Request{
		Target: pressurepkg.HexToRGB("#zz0000"),
		Actual: pressurepkg.HexToRGB("#000000"),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid target color", decode[map[string]string](t, w)["error"])
}

// =============================================================================
// Accounts
// =============================================================================

func TestRegisterAndLogin(t *testing.T) {
	s := New()
	creds := gin.H{"username": "mia", "password": "secret"}

	assert.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodPost, "/api/login", creds).Code)
	assert.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/api/register", creds).Code)

	taken := do(t, s, http.MethodPost, "/api/register", creds)
	assert.Equal(t, http.StatusConflict, taken.Code)
	assert.Equal(t, "Username already taken", decode[map[string]string](t, taken)["error"])

	w := do(t, s, http.MethodPost, "/api/login", creds)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]string](t, w)
	assert.Equal(t, "mia", body["username"])
	require.Len(t, body["token"], 32)

	username, ok := s.Username(body["token"])
	assert.True(t, ok)
	assert.Equal(t, "mia", username)

	wrong := do(t, s, http.MethodPost, "/api/login", gin.H{"username": "mia", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
}

func TestRegister_MissingFields(t *testing.T) {
	w := do(t, New(), http.MethodPost, "/api/register", gin.H{"username": " ", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =============================================================================
// Against the palette client
// =============================================================================

func TestPaletteClientRoundTrip(t *testing.T) {
	s := New()
	s.Seed()
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	ctx := context.Background()
	synchronizer := carnivalpalette.New(
		network.NewResource(srv.URL, srv.Client()),
		alert.New(),
		carnivalpalette.ConfirmFunc(func(string) (bool, error) { return true, nil }),
	)

	require.NoError(t, synchronizer.Load(ctx, mo.None[int]()))
	state := synchronizer.Snapshot()
	require.Len(t, state.Options, 3)
	assert.Equal(t, mo.Some(3), state.Selected)

	saved, err := synchronizer.Create(ctx, "Meadow")
	require.NoError(t, err)
	require.True(t, saved)
	assert.Equal(t, mo.Some(4), synchronizer.Snapshot().Selected)
	assert.Equal(t, "Meadow", synchronizer.Snapshot().SelectorLabel())

	require.NoError(t, synchronizer.Select(ctx, 1))
	require.Len(t, synchronizer.Snapshot().Colors, 3)
	require.NoError(t, synchronizer.DeleteColor(ctx, 1, 1))
	assert.Len(t, synchronizer.Snapshot().Colors, 2)

	require.NoError(t, synchronizer.Delete(ctx))
	state = synchronizer.Snapshot()
	assert.Len(t, state.Options, 3)
	assert.Equal(t, mo.Some(4), state.Selected)
}
