package redis

import "fmt"

// Key prefix for all server data
const keyPrefix = "worlds"

// accountKey returns the Redis key for a user's Account
func accountKey(username string) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, username)
}
