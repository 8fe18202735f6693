/*
Copyright © 2025 Greg Griffin <greg.griffin2@gmail.com>
*/
package cmd

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/gregriff/ytlc/internal/chat"
	"github.com/gregriff/ytlc/internal/feed"
	"github.com/gregriff/ytlc/internal/storage"
	"github.com/gregriff/ytlc/internal/stylesheet"
	"github.com/spf13/viper"
)

// app holds what every command that touches the feed or the saved stylesheet needs.
type app struct {
	db     *storage.Store
	styles *stylesheet.Store
	ctrl   *feed.Controller
	log    *log.Logger
}

func databasePath() string {
	if path := viper.GetString("database"); path != "" {
		return path
	}
	return storage.DefaultPath()
}

func converter() stylesheet.Converter {
	return stylesheet.Converter{BaseFirst: viper.GetBool("base-first")}
}

// openStyles opens the database and the stylesheet store in it.
func openStyles() (*storage.Store, *stylesheet.Store, error) {
	db, err := storage.Open(databasePath())
	if err != nil {
		return nil, nil, err
	}
	return db, stylesheet.NewStore(db), nil
}

func newApp(logger *log.Logger) (*app, error) {
	db, styles, err := openStyles()
	if err != nil {
		return nil, err
	}
	gen := chat.NewGenerator(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	ctrl := feed.NewController(feed.New(), gen, logger, feed.Options{
		Interval:     viper.GetDuration("auto-interval"),
		InitialDelay: viper.GetDuration("initial-delay"),
		DemoStep:     viper.GetDuration("demo-step"),
		MassStep:     viper.GetDuration("mass-step"),
	})
	return &app{db: db, styles: styles, ctrl: ctrl, log: logger}, nil
}

func (a *app) Close() {
	a.ctrl.Close()
	if err := a.db.Close(); err != nil {
		a.log.Error("failed to close database", "err", err)
	}
}
