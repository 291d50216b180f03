package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	gormcontactrepo "github.com/jrsteele09/staff-directory/contacts/gormrepo"
	"github.com/jrsteele09/staff-directory/internal/config"
	"github.com/jrsteele09/staff-directory/internal/database"
	"github.com/jrsteele09/staff-directory/server"
	gormsessionrepo "github.com/jrsteele09/staff-directory/sessions/gormrepo"
	gormuserrepo "github.com/jrsteele09/staff-directory/users/gormrepo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	// Restart after a recovered panic; any other error is fatal
	for {
		err := run()
		if err == nil {
			break
		}
		if !errors.Is(err, errPanicRecovered) {
			log.Fatal().Err(err).Msg("Error running server")
		}
		time.Sleep(1 * time.Second)
	}
	log.Info().Msg("Server stopped")
}

var errPanicRecovered = errors.New("panic recovered")

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errPanicRecovered
		}
	}()

	c := config.New()
	setupLogging(c.GetEnv())
	displayAppname(c.GetAppName())

	db, err := database.Open(c)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	err = database.Migrate(db,
		&gormuserrepo.UserRecord{},
		&gormcontactrepo.ContactRecord{},
		&gormsessionrepo.SessionRecord{},
	)
	if err != nil {
		return err
	}

	handler, err := server.New(context.Background(), c, server.Repos{
		Users:    gormuserrepo.NewGormUserRepo(db),
		Contacts: gormcontactrepo.NewGormContactRepo(db),
		Sessions: gormsessionrepo.NewGormSessionRepo(db),
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- listenAndServe(httpServer)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

func setupLogging(env string) {
	zerolog.TimeFieldFormat = time.RFC3339
	if env == "DEV" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	log.Info().Msg("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func closeDatabase(db *gorm.DB) {
	if err := database.Close(db); err != nil {
		log.Err(err).Msg("failed to close database")
		return
	}
	log.Info().Msg("Database connection closed")
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
