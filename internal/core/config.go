package core

import "time"

type ProviderConfig interface {
	GetModel() string
	GetProvider() string
	GetAPIKey() string
	GetBaseURL() string
	GetGenerationTimeout() time.Duration
}

type TelegramConfig interface {
	GetTelegramToken() string
	GetTelegramOwnerID() int64
}
