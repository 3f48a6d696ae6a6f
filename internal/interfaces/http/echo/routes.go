package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, importHandler *ImportHandler, tableHandler *TableHandler) {
	api := server.Group("/api/v1")

	api.POST("/imports", importHandler.Upload)
	api.GET("/imports", importHandler.ListRuns)
	api.GET("/imports/:id", importHandler.GetRun)
	api.PUT("/imports/:id/mapping", importHandler.UpdateMapping)
	api.POST("/imports/:id/execute", importHandler.Execute)
	api.DELETE("/imports/:id", importHandler.Cancel)

	api.GET("/tables/:table/columns", tableHandler.Columns)
	api.GET("/tables/:table/export", tableHandler.Export)
}
