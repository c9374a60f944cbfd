package app

import (
	"github.com/stoamedia/wisdom-backend/internal/http/handlers"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Wisdom *handlers.WisdomHandler
}

func wireHandlers(services Services) Handlers {
	return Handlers{
		Health: handlers.NewHealthHandler(),
		Wisdom: handlers.NewWisdomHandler(services.Wisdom),
	}
}
