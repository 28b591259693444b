package application

import (
	"github.com/tinytodo/backend/internal/application/todo"
	"github.com/google/wire"
)

// ProviderSet Application 层总 ProviderSet
var ProviderSet = wire.NewSet(
	todo.ProviderSet,
)
