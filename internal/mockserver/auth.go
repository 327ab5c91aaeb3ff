package mockserver

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func bindCredentials(c *gin.Context) (credentials, bool) {
	var body credentials
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON body")
		return body, false
	}

	body.Username = strings.TrimSpace(body.Username)
	if body.Username == "" || body.Password == "" {
		fail(c, http.StatusBadRequest, "Username and password are required")
		return body, false
	}
	return body, true
}

func newToken() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// Username returns the account token was issued to.
func (s *Server) Username(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	username, ok := s.tokens[token]
	return username, ok
}

func (s *Server) register(c *gin.Context) {
	body, ok := bindCredentials(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[body.Username]; exists {
		fail(c, http.StatusConflict, "Username already taken")
		return
	}

	s.users[body.Username] = body.Password
	c.JSON(http.StatusCreated, gin.H{"username": body.Username})
}

func (s *Server) login(c *gin.Context) {
	body, ok := bindCredentials(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if password, exists := s.users[body.Username]; !exists || password != body.Password {
		fail(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token := newToken()
	s.tokens[token] = body.Username
	c.JSON(http.StatusOK, gin.H{"username": body.Username, "token": token})
}
