package redis

import "github.com/C0deSamurai/verdant-ecstasy/internal/model"

// keyspace builds every key under one prefix
type keyspace string

// game holds one game's JSON
func (k keyspace) game(id model.GameID) string {
	return string(k) + ":game:" + string(id)
}

// gameIndex is a sorted set of game IDs scored by last update in
// milliseconds
func (k keyspace) gameIndex() string {
	return string(k) + ":games"
}

// words is the set of lexicon words
func (k keyspace) words() string {
	return string(k) + ":words"
}
