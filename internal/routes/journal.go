package routes

import (
	"github.com/labstack/echo/v4"

	"field-service/internal/controllers"
)

func runJournalRouter(group *echo.Group, controller *controllers.JournalController) {
	group.GET("/occurrences", controller.ListOccurrences)
	group.GET("/occurrences/export", controller.ExportOccurrences)
}
