package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

const (
	// DBContextKey - ключ, по которому хранится *gorm.DB (пул или транзакция)
	DBContextKey = contextKey("db")

	// UserIDKey / RoleKey / UsernameKey - идентичность из JWT (кладет middleware.Identify)
	UserIDKey   = contextKey("userID")
	RoleKey     = contextKey("role")
	UsernameKey = contextKey("username")

	// TrustedKey - запрос прошел по доверенному заголовку
	TrustedKey = contextKey("trusted")
)
