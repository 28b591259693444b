package storage

import "github.com/google/wire"

// ProviderSet Storage 基础设施层 ProviderSet
var ProviderSet = wire.NewSet(
	ProvideDB,         // 提供数据库连接池
	NewTodoRepository, // 待办事项仓储
)
