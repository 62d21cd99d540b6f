package kvstore

// KVStore is the small key/value surface the service needs for derived-data
// caching. Implementations must be safe for concurrent use.
type KVStore interface {
	Get(key string) (string, error)
	Set(key string, value interface{}) error
	Delete(key string) error
}
