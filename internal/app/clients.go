package app

import (
	"github.com/stoamedia/wisdom-backend/internal/clients/openai"
	"github.com/stoamedia/wisdom-backend/internal/pkg/logger"
)

type Clients struct {
	OpenAI openai.Client
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	ai, err := openai.NewClient(log, cfg.OpenAI)
	if err != nil {
		return Clients{}, err
	}
	return Clients{OpenAI: ai}, nil
}
