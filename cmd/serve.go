package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guardvision/localocr"
	"github.com/guardvision/localocr/ocr"
	"github.com/spf13/cobra"
)

var serveCMD = &cobra.Command{
	Use:   "serve",
	Short: "Start REST API server",
	Long:  "Start REST API server and recognize text on base64 encoded images",
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := newAdapter()
		if err != nil {
			return err
		}
		defer adapter.Terminate()

		server := &http.Server{
			Addr:    fmt.Sprintf("%s:%d", settings.GetString("host"), settings.GetUint("port")),
			Handler: newRouter(adapter),
		}

		go func() {
			<-cmd.Context().Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			server.Shutdown(shutdownCtx)
		}()

		slog.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Join(errors.New("failed to run HTTP server engine"), err)
		}

		return nil
	},
}

func init() {
	serveCMD.Flags().String("host", "0.0.0.0", "Host server will be listening on")
	serveCMD.Flags().Uint("port", 8884, "Port server will be listening on")
}

type ocrRequest struct {
	// Base64 encoded image. Not validated here, broken images fail inside the adapter.
	Image string `json:"image"`
	// Language tag. Server default is used when empty
	Lang string `json:"lang"`
}

func newRouter(adapter *localocr.Adapter) *gin.Engine {
	ginEngine := gin.New()
	ginEngine.Use(gin.Recovery(), requestLogger())

	ginEngine.POST("/ocr", func(ctx *gin.Context) {
		var request ocrRequest
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"status": false,
				"error":  err.Error(),
			})
			return
		}

		result, err := adapter.Recognize(ctx.Request.Context(), request.Image, request.Lang)
		if err != nil {
			var startupErr *localocr.StartupError
			if errors.As(err, &startupErr) {
				ctx.JSON(http.StatusBadGateway, gin.H{
					"status": false,
					"error":  startupErr.Error(),
					"kind":   startupErr.Kind,
				})
				return
			}

			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status": false,
				"error":  err.Error(),
			})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"status": true,
			"result": result,
		})
	})
	ginEngine.POST("/terminate", func(ctx *gin.Context) {
		adapter.Terminate()
		ctx.JSON(http.StatusOK, gin.H{
			"status": true,
		})
	})
	ginEngine.GET("/status", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"language":         adapter.Language(),
			"tesseractEnabled": ocr.FeatureTesseractEnabled,
		})
	})

	return ginEngine
}

func requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		slog.Debug("HTTP request", "method", ctx.Request.Method, "path", ctx.FullPath(), "status", ctx.Writer.Status(), "duration", time.Since(start))
	}
}
