package domain

// Client клиент клиники (только чтение: карточки ведутся в другом модуле)
type Client struct {
	ID       int64
	FullName string
}
