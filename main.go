package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopadmin/internal/catalog"
	intconfig "shopadmin/internal/config"
	router "shopadmin/internal/http"
	"shopadmin/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	log := utils.InitLogger(env.LogLevel)
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	compiler, err := catalog.Load(env.PageMaxLimit)
	if err != nil {
		log.Fatal().Err(err).Msg("katalog resource tidak valid")
	}

	if _, err := intconfig.ConnectDB(env); err != nil {
		log.Fatal().Err(err).Msg("gagal konek database")
	}
	defer intconfig.CloseDB()

	r := router.NewRouter(env, compiler)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", env.AppAddr).Msg("server berjalan")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("gagal menjalankan server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("mematikan server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("shutdown server gagal")
	}

	log.Info().Msg("server berhenti dengan aman")
}
