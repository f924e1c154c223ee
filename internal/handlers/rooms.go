package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/YannisFouzi/blind-test-sub001/internal/game"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

var roomCodePattern = regexp.MustCompile(`^[A-Z0-9]{4,8}$`)

// NormalizeRoomCode uppercases a room code and reports whether it is valid.
func NormalizeRoomCode(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	return code, roomCodePattern.MatchString(code)
}

type RoomsHandler struct {
	manager       *game.Manager
	publicBaseURL string
}

func NewRoomsHandler(manager *game.Manager, publicBaseURL string) *RoomsHandler {
	return &RoomsHandler{manager: manager, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// ListRooms godoc
// @Summary      List active rooms
// @Tags         rooms
// @Produce      json
// @Success      200 {array} game.RoomSummary
// @Router       /api/v1/rooms [get]
func (h *RoomsHandler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.ListActive())
}

// RoomQR godoc
// @Summary      QR code for joining a room
// @Description  PNG QR code encoding the public join URL of the room
// @Tags         rooms
// @Produce      png
// @Param        code path string true "Room code"
// @Success      200 {string} binary "PNG image"
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/rooms/{code}/qr [get]
func (h *RoomsHandler) RoomQR(c *gin.Context) {
	code, ok := NormalizeRoomCode(c.Param("code"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid room code"})
		return
	}

	joinURL := fmt.Sprintf("%s/play/%s", h.publicBaseURL, code)
	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to generate QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
