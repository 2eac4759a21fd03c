package realtime

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"api/services"
)

var (
	puzzleClients = make(map[uint]map[*websocket.Conn]bool) // Map of puzzle ID to connected clients
	broadcast     = make(chan CompletionUpdate)             // Broadcast channel for updates
	mutex         sync.Mutex                                // Mutex to protect puzzleClients map
)

// CompletionUpdate is pushed to every client watching a puzzle when someone
// completes it. It carries the refreshed projection, not the raw record, so
// watchers never see another user's completion state.
type CompletionUpdate struct {
	PuzzleID    uint                    `json:"puzzle_id"`
	DisplayName string                  `json:"display_name"`
	Metadata    services.PuzzleMetadata `json:"metadata"`
}

// RegisterClient adds a WebSocket client watching a specific puzzle
func RegisterClient(puzzleID uint, conn *websocket.Conn) {
	mutex.Lock()
	if puzzleClients[puzzleID] == nil {
		puzzleClients[puzzleID] = make(map[*websocket.Conn]bool)
	}
	puzzleClients[puzzleID][conn] = true
	mutex.Unlock()
}

// UnregisterClient removes a WebSocket client from a specific puzzle
func UnregisterClient(puzzleID uint, conn *websocket.Conn) {
	mutex.Lock()
	if clients, exists := puzzleClients[puzzleID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(puzzleClients, puzzleID)
		}
	}
	mutex.Unlock()
}

// BroadcastCompletion sends an update to all clients watching the puzzle
func BroadcastCompletion(update CompletionUpdate) {
	broadcast <- update
}

func handleBroadcast() {
	for {
		update := <-broadcast
		mutex.Lock()
		if clients, exists := puzzleClients[update.PuzzleID]; exists {
			for client := range clients {
				if err := client.WriteJSON(update); err != nil {
					log.Printf("WebSocket write error: %v", err)
					client.Close()
					delete(clients, client)
				}
			}
		}
		mutex.Unlock()
	}
}

func init() {
	go handleBroadcast()
}
