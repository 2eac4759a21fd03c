package puzzles

import (
	"github.com/gin-gonic/gin"

	"api/database"
	"api/middleware"
	"api/services"
)

var (
	catalog     *services.CatalogService
	tracker     *services.CompletionTracker
	enricher    *services.Enricher
	puzzleStore services.PuzzleStore
)

// RegisterRoutes registers all routes related to puzzles
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup, tokens *services.TokenService) {
	puzzleStore = database.NewPuzzleStore(database.DB)
	completionStore := database.NewCompletionStore(database.DB)
	enricher = services.NewEnricher(completionStore)
	catalog = services.NewCatalogService(puzzleStore, enricher)
	tracker = services.NewCompletionTracker(puzzleStore, completionStore)

	searchRateLimiter := middleware.NewRateLimiter(600, 60)

	puzzles := r.Group("/puzzles")
	puzzles.Use(middleware.AuthMiddleware(tokens))
	{
		puzzles.GET("/catalog/:category", ListPuzzles)
		puzzles.POST("/search", middleware.RateLimiterMiddleware(searchRateLimiter), SearchPuzzles)
		puzzles.POST("", SubmitPuzzle)
		puzzles.GET("/export/stats", ExportPuzzleStats)
		puzzles.GET("/:puzzleID/download", DownloadPuzzle)
		puzzles.POST("/:puzzleID/complete", CompletePuzzle)
		puzzles.GET("/:puzzleID/live", PuzzleWebSocket)
		puzzles.DELETE("/:puzzleID", DeletePuzzle)
	}
}
