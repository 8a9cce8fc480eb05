package deps

import (
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pollhub/pollhub_api/config"
	"github.com/pollhub/pollhub_api/internal/db"
	"github.com/pollhub/pollhub_api/util/websockets"
)

type Dependencies struct {
	DB        *db.DB
	WebSocket *websockets.WebSocketManager
}

func New(cfg *config.Config) *Dependencies {
	database, err := db.New(cfg.Dsn)
	if err != nil {
		log.Panicln("failed to connect to database", "error", err)
	}

	return &Dependencies{
		DB:        database,
		WebSocket: websockets.NewWebSocketManager(),
	}
}

func (d *Dependencies) Pool() *pgxpool.Pool {
	return d.DB.Pool()
}
