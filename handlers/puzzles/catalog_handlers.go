package puzzles

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"api/middleware"
	"api/services"
	"api/utils/apperr"
)

// ListPuzzles lists the puzzles of one category, enriched for the viewer
// @Summary List puzzles by category
// @Description List the puzzles of a category (official, completed, mine, new, top-rated, easy, medium, hard) enriched with the viewer's completion state
// @Tags Puzzles
// @Produce json
// @Param category path string true "Category"
// @Success 200 {array} services.PuzzleMetadata
// @Failure 400,401 {object} map[string]string
// @Router /puzzles/catalog/{category} [get]
// @Security Bearer
func ListPuzzles(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	category := c.Param("category")

	metas, err := catalog.List(c.Request.Context(), category, user.ID)
	if err != nil {
		if apperr.IsInvalidArgument(err) {
			respondWithError(c, http.StatusBadRequest, ErrInvalidCategory)
			return
		}
		log.Printf("Error listing puzzles for category %s: %v", category, err)
		respondWithError(c, http.StatusInternalServerError, ErrFetchPuzzlesFailed)
		return
	}

	c.JSON(http.StatusOK, metas)
}

// SearchPuzzles searches puzzles by title or description
// @Summary Search puzzles
// @Description Search puzzles by title or description substring, with duration, difficulty and completed filters applied to the enriched results
// @Tags Puzzles
// @Accept json
// @Produce json
// @Param request body SearchRequest true "Search criteria"
// @Success 200 {array} services.PuzzleMetadata
// @Failure 400,401 {object} map[string]string
// @Router /puzzles/search [post]
// @Security Bearer
func SearchPuzzles(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Duration == "" {
		req.Duration = "any"
	}
	if req.Difficulty == "" {
		req.Difficulty = "any"
	}

	metas, err := catalog.Search(c.Request.Context(), services.SearchCriteria{
		SearchTerm:       req.SearchTerm,
		Duration:         req.Duration,
		Difficulty:       req.Difficulty,
		IncludeCompleted: req.IncludeCompleted,
	}, user.ID)
	if err != nil {
		if apperr.IsInvalidArgument(err) {
			respondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error searching puzzles: %v", err)
		respondWithError(c, http.StatusInternalServerError, ErrFetchPuzzlesFailed)
		return
	}

	c.JSON(http.StatusOK, metas)
}
