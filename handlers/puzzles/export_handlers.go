package puzzles

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"api/middleware"
	"api/services"
)

// ExportPuzzleStats exports every puzzle aggregate as an xlsx workbook
// @Summary Export puzzle statistics
// @Description Download an xlsx workbook with one row per puzzle aggregate
// @Tags Puzzles
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 401 {object} map[string]string
// @Router /puzzles/export/stats [get]
// @Security Bearer
func ExportPuzzleStats(c *gin.Context) {
	if _, err := middleware.GetUserFromRequest(c); err != nil {
		return
	}

	puzzles, err := puzzleStore.Newest(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching puzzles for export: %v", err)
		respondWithError(c, http.StatusInternalServerError, ErrFetchPuzzlesFailed)
		return
	}

	workbook, err := services.BuildStatsWorkbook(puzzles)
	if err != nil {
		log.Printf("Error building stats workbook: %v", err)
		respondWithError(c, http.StatusInternalServerError, "Failed to build export")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="puzzle-stats.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		log.Printf("Error writing stats workbook: %v", err)
	}
}
