package router

import (
	"licaca-meal-log/controllers/check"
	"licaca-meal-log/controllers/meal"
	"licaca-meal-log/controllers/readProbe"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Router(mealController *meal.Controller) *gin.Engine {
	route := gin.Default()

	route.GET("/read-probe", readProbe.Probe)
	route.GET("/check-live", check.CheckAlive)
	route.GET("/metrics", gin.WrapH(promhttp.Handler()))

	route.POST("/meals", mealController.Create)
	route.GET("/meals", mealController.List)

	return route
}
