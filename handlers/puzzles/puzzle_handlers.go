package puzzles

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"api/database"
	"api/middleware"
	"api/models"
	"api/realtime"
	"api/services"
	"api/utils/apperr"
)

// SubmitPuzzle creates a new puzzle
// @Summary Submit a puzzle
// @Description Create a new puzzle owned by the authenticated user. The author name is snapshotted at submission time.
// @Tags Puzzles
// @Accept json
// @Produce json
// @Param request body SubmitRequest true "Puzzle submission"
// @Success 201 {object} models.Puzzle
// @Failure 400,401 {object} map[string]string
// @Router /puzzles [post]
// @Security Bearer
func SubmitPuzzle(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.MinimumComponents == 0 {
		req.MinimumComponents = 1
	}

	authorID := user.ID
	puzzle := models.Puzzle{
		ShortKey:          req.ShortKey,
		Title:             req.Title,
		Description:       req.Description,
		Data:              req.Data,
		MinimumComponents: req.MinimumComponents,
		Author:            &authorID,
		AuthorName:        user.DisplayName,
	}
	if err := puzzleStore.Create(c.Request.Context(), &puzzle); err != nil {
		log.Printf("Error creating puzzle: %v", err)
		respondWithError(c, http.StatusInternalServerError, ErrSubmitFailed)
		return
	}

	c.JSON(http.StatusCreated, puzzle)
}

// DownloadPuzzle returns the decoded game data and the viewer's metadata
// @Summary Download a puzzle
// @Description Download the decoded game data. The first download per user creates the completion record and counts the download.
// @Tags Puzzles
// @Produce json
// @Param puzzleID path int true "Puzzle ID"
// @Success 200 {object} DownloadResponse
// @Failure 401,404 {object} map[string]string
// @Router /puzzles/{puzzleID}/download [get]
// @Security Bearer
func DownloadPuzzle(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	puzzleID, err := parsePuzzleID(c)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidPuzzleID)
		return
	}

	ctx := c.Request.Context()
	_, puzzle, err := tracker.RecordDownload(ctx, puzzleID, user.ID)
	if err != nil {
		if apperr.IsNotFound(err) {
			respondWithError(c, http.StatusNotFound, ErrPuzzleNotFound)
			return
		}
		log.Printf("Error recording download for puzzle %d: %v", puzzleID, err)
		respondWithError(c, http.StatusInternalServerError, ErrFetchPuzzlesFailed)
		return
	}

	// The blob is immutable, so the decoded form can be cached hard
	cacheKey := GameDataCacheKey + strconv.FormatUint(uint64(puzzleID), 10)
	var game map[string]interface{}
	if found, _ := database.GetFromCache(ctx, cacheKey, &game); !found {
		game, err = services.DecodeGameData(puzzle.Data)
		if err != nil {
			log.Printf("Error decoding puzzle %d: %v", puzzleID, err)
			respondWithError(c, http.StatusInternalServerError, ErrDecodeFailed)
			return
		}
		_ = database.SetToCache(ctx, cacheKey, game)
	}

	meta, err := enricher.Enrich(ctx, puzzle, user.ID)
	if err != nil {
		log.Printf("Error enriching puzzle %d: %v", puzzleID, err)
		respondWithError(c, http.StatusInternalServerError, ErrFetchPuzzlesFailed)
		return
	}

	c.JSON(http.StatusOK, DownloadResponse{Game: game, Meta: meta})
}

// CompletePuzzle records a completion sample
// @Summary Complete a puzzle
// @Description Mark the puzzle completed for the authenticated user and fold the sample into the puzzle's aggregate statistics
// @Tags Puzzles
// @Accept json
// @Produce json
// @Param puzzleID path int true "Puzzle ID"
// @Param request body CompleteRequest true "Completion sample"
// @Success 200 {object} models.Completion "Empty object when the user never downloaded the puzzle"
// @Failure 400,401,404 {object} map[string]string
// @Router /puzzles/{puzzleID}/complete [post]
// @Security Bearer
func CompletePuzzle(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	puzzleID, err := parsePuzzleID(c)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidPuzzleID)
		return
	}

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	record, err := tracker.RecordCompletion(ctx, puzzleID, user.ID, services.CompletionSample{
		Time:             req.Time,
		Liked:            req.Liked,
		ComponentsUsed:   req.ComponentsUsed,
		NandsUsed:        req.NandsUsed,
		DifficultyRating: req.DifficultyRating,
	})
	if err != nil {
		if apperr.IsNotFound(err) {
			respondWithError(c, http.StatusNotFound, ErrPuzzleNotFound)
			return
		}
		log.Printf("Error recording completion for puzzle %d: %v", puzzleID, err)
		respondWithError(c, http.StatusInternalServerError, ErrCompleteFailed)
		return
	}

	// Push the refreshed metadata to everyone watching this puzzle. Only
	// the hub send is detached; the fetch runs on the live request context.
	if puzzle, err := puzzleStore.ByID(ctx, puzzleID); err == nil {
		if meta, err := enricher.Enrich(ctx, puzzle, user.ID); err == nil {
			update := realtime.CompletionUpdate{
				PuzzleID:    puzzleID,
				DisplayName: user.DisplayName,
				Metadata:    meta,
			}
			go realtime.BroadcastCompletion(update)
		}
	}

	if record == nil {
		// Completed without ever downloading: the aggregate moved but
		// there is no record to return.
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeletePuzzle deletes a puzzle owned by the authenticated user
// @Summary Delete a puzzle
// @Description Delete a puzzle. Returns success=false (not an error) when the puzzle is absent or owned by someone else.
// @Tags Puzzles
// @Produce json
// @Param puzzleID path int true "Puzzle ID"
// @Success 200 {object} DeleteResponse
// @Failure 400,401 {object} map[string]string
// @Router /puzzles/{puzzleID} [delete]
// @Security Bearer
func DeletePuzzle(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	puzzleID, err := parsePuzzleID(c)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidPuzzleID)
		return
	}

	ctx := c.Request.Context()
	puzzle, err := puzzleStore.ByID(ctx, puzzleID)
	if err != nil {
		if apperr.IsNotFound(err) {
			c.JSON(http.StatusOK, DeleteResponse{Success: false})
			return
		}
		respondWithError(c, http.StatusInternalServerError, ErrFetchPuzzlesFailed)
		return
	}

	if puzzle.Author == nil || *puzzle.Author != user.ID {
		c.JSON(http.StatusOK, DeleteResponse{Success: false})
		return
	}

	if err := puzzleStore.Delete(ctx, puzzleID); err != nil {
		log.Printf("Error deleting puzzle %d: %v", puzzleID, err)
		respondWithError(c, http.StatusInternalServerError, ErrDeleteFailed)
		return
	}

	// Drop the cached decoded game data
	cacheKey := GameDataCacheKey + strconv.FormatUint(uint64(puzzleID), 10)
	if err := database.REDIS.Del(ctx, cacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate game data cache: %v", err)
	}

	c.JSON(http.StatusOK, DeleteResponse{Success: true})
}

func parsePuzzleID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("puzzleID"), 10, 32)
	return uint(id), err
}
