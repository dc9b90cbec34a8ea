package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/helloworldpark/tickle-upper-limit/controller"
	"github.com/helloworldpark/tickle-upper-limit/logger"
	"github.com/helloworldpark/tickle-upper-limit/metrics"
	"github.com/helloworldpark/tickle-upper-limit/watcher"
)

// Pipeline is the part of controller.General the server drives.
type Pipeline interface {
	Run(now time.Time) (controller.Result, error)
	Preview(day time.Time) (string, error)
	HolidayDescription(now time.Time) string
}

// NewRouter routes:
//   GET  /              hello
//   GET  /health        ok
//   GET  /holidays      whether the current run day is a trading day
//   GET  /notes/:date   preview of the note of date(YYYY-MM-DD), nothing is written
//   POST /notes         runs the pipeline as if started now
//   GET  /metrics       prometheus
func NewRouter(p Pipeline, now func() time.Time) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello World!")
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/holidays", func(c *gin.Context) {
		c.String(http.StatusOK, p.HolidayDescription(now()))
	})
	router.GET("/notes/:date", onPreview(p))
	router.POST("/notes", onRun(p, now))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	return router
}

func onPreview(p Pipeline) func(c *gin.Context) {
	return func(c *gin.Context) {
		day, err := watcher.ParseDay(c.Param("date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		note, err := p.Preview(day)
		if err != nil {
			logger.Error("[Server] Preview of %s failed: %s", c.Param("date"), err.Error())
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(note))
	}
}

func onRun(p Pipeline, now func() time.Time) func(c *gin.Context) {
	return func(c *gin.Context) {
		result, err := p.Run(now())
		if err != nil {
			logger.Error("[Server] Run failed: %s", err.Error())
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "date": result.Date})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// Serve blocks serving the router on addr.
func Serve(addr string, p Pipeline, now func() time.Time) error {
	logger.Info("[Server] Listening on %s", addr)
	return NewRouter(p, now).Run(addr)
}
