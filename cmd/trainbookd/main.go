// Command trainbookd is the reservation service the client talks to.
// With a MySQL DSN it runs against the database; without one it serves
// a seeded in-memory timetable, which is enough for development.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	flag "github.com/spf13/pflag"

	"github.com/pari08yadav/train-ticket-booking/internal/config"
	"github.com/pari08yadav/train-ticket-booking/internal/server"
	"github.com/pari08yadav/train-ticket-booking/internal/server/store"
)

func main() {
	env := config.LoadEnv()

	addr := flag.String("addr", env.AppAddr, "listen address")
	dsn := flag.String("dsn", env.DBDSN, "MySQL DSN; empty runs the in-memory store")
	flag.Parse()

	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	st, closeStore, err := openStore(*dsn)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer closeStore()

	router := server.NewRouter(server.Config{
		Secret:   []byte(env.JWTSecret),
		TokenTTL: 24 * time.Hour,
	}, st)

	srv := &http.Server{
		Addr:         *addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("trainbookd listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	log.Println("trainbookd stopped")
}

func openStore(dsn string) (store.Store, func(), error) {
	if dsn == "" {
		mem := store.NewMemoryStore()
		mem.Seed()
		return mem, func() {}, nil
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, err
	}
	return store.NewSQLStore(db), func() { db.Close() }, nil
}
