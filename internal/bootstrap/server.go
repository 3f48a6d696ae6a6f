package bootstrap

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mohammadpnp/bizimport/internal/config"
	httpecho "github.com/mohammadpnp/bizimport/internal/interfaces/http/echo"
)

func NewHTTPServer(cfg config.Config, services *Services) *echo.Echo {
	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Printf("%s %s %d %s request_id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
	server.Use(middleware.CORS())
	server.Use(middleware.BodyLimit(cfg.UploadBodyLimit))

	importHandler := httpecho.NewImportHandler(
		services.Upload,
		services.UpdateMapping,
		services.Execute,
		services.Cancel,
		services.GetRun,
		services.ListRuns,
	)
	tableHandler := httpecho.NewTableHandler(services.Columns, services.Export)

	httpecho.RegisterRoutes(server, importHandler, tableHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":        "ok",
			"open_sessions": services.Sessions.Len(),
		})
	})

	return server
}
