package service

import (
	"github.com/mira/chat-relay/internal/config"
	"github.com/mira/chat-relay/internal/repository"
	"github.com/mira/chat-relay/internal/token"
)

type Services struct {
	Auth *AuthService
	Chat *ChatService
}

func NewServices(repos *repository.Repositories, provider Provider, cfg *config.Config) *Services {
	issuer := token.NewIssuer([]byte(cfg.JWTSecret), cfg.AccessTokenTTL)

	return &Services{
		Auth: NewAuthService(repos.User, issuer),
		Chat: NewChatService(repos.Chat, provider, cfg.ProviderTimeout),
	}
}
