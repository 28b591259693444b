package infrastructure

import (
	"github.com/google/wire"

	"github.com/tinytodo/backend/internal/infrastructure/config"
	"github.com/tinytodo/backend/internal/infrastructure/storage"
	"github.com/tinytodo/backend/internal/infrastructure/websocket"
)

// ProviderSet Infrastructure 层总 ProviderSet
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	storage.ProviderSet,
	websocket.ProviderSet,
)
