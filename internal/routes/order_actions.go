package routes

import (
	"github.com/labstack/echo/v4"

	"field-service/internal/controllers"
)

func runOrderActionRouter(group *echo.Group, controller *controllers.OrderActionController) {
	group.GET("/orders/:id/actions", controller.GetAvailableActions)
	group.POST("/orders/:id/actions", controller.ExecuteAction)
}
