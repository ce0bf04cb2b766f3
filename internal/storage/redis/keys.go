package redis

import "fmt"

// Key prefix for all stored data
const keyPrefix = "scrabble"

// Key generation functions for each entity type

// userKey returns the Redis key for a User
func userKey(id int64) string {
	return fmt.Sprintf("%s:user:%d", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// gameKey returns the Redis key for a Game
func gameKey(id int64) string {
	return fmt.Sprintf("%s:game:%d", keyPrefix, id)
}

// gameNameIndexKey returns the Redis key for the game name -> game_id index
func gameNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:game_name:%s", keyPrefix, name)
}

// gamesIndexKey returns the Redis key for the SET of all game IDs
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// userSeqKey returns the Redis key for the user ID sequence
func userSeqKey() string {
	return fmt.Sprintf("%s:seq:user", keyPrefix)
}

// gameSeqKey returns the Redis key for the game ID sequence
func gameSeqKey() string {
	return fmt.Sprintf("%s:seq:game", keyPrefix)
}
