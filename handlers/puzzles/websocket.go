package puzzles

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"api/realtime"
	"api/utils/apperr"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// PuzzleWebSocket streams completion events for a specific puzzle
// @Summary Watch a puzzle
// @Description Upgrade to a WebSocket that receives an event whenever someone completes the puzzle
// @Tags Puzzles
// @Param puzzleID path int true "Puzzle ID"
// @Success 101
// @Failure 404 {object} map[string]string
// @Router /puzzles/{puzzleID}/live [get]
// @Security Bearer
func PuzzleWebSocket(c *gin.Context) {
	puzzleID, err := parsePuzzleID(c)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidPuzzleID)
		return
	}

	if _, err := puzzleStore.ByID(c.Request.Context(), puzzleID); err != nil {
		if apperr.IsNotFound(err) {
			respondWithError(c, http.StatusNotFound, ErrPuzzleNotFound)
			return
		}
		respondWithError(c, http.StatusInternalServerError, ErrFetchPuzzlesFailed)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	realtime.RegisterClient(puzzleID, conn)
	defer func() {
		realtime.UnregisterClient(puzzleID, conn)
		conn.Close()
	}()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}
