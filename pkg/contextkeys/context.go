package contextkeys

type ContextKey string

const (
	// DBContextKey is the gin context key under which DBMiddleware stores
	// the *gorm.DB handle (the shared pool, or a transaction in tests).
	DBContextKey ContextKey = "db"
)
