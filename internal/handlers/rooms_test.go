package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeRoomCode(t *testing.T) {
	cases := []struct {
		in    string
		want  string
		valid bool
	}{
		{"abcd", "ABCD", true},
		{" ab12 ", "AB12", true},
		{"ABCD1234", "ABCD1234", true},
		{"abc", "", false},
		{"toolongcode", "", false},
		{"ab cd", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := NormalizeRoomCode(tc.in)
		assert.Equal(t, tc.valid, ok, "input %q", tc.in)
		if tc.valid {
			assert.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}

func TestRoomQR(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "code", Value: "abcd"}}

	h := NewRoomsHandler(nil, "http://example.com/")
	h.RoomQR(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestRoomQRInvalidCode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "code", Value: "no"}}

	h := NewRoomsHandler(nil, "http://example.com")
	h.RoomQR(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
