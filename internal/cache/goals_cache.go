package cache

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/fittrack/internal/goals"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

// GoalsCache keeps owner goal lists (keyed by owner and status filter) as JSON.
type GoalsCache struct {
	cache         *freecache.Cache
	expireSeconds int
}

func NewGoalsCache(sizeMB, expireSeconds int) *GoalsCache {
	return &GoalsCache{
		cache:         freecache.NewCache(sizeMB * megabyte),
		expireSeconds: expireSeconds,
	}
}

func listKey(owner string, status goals.Status) []byte {
	return []byte(fmt.Sprintf("goals::%s::%s", owner, status))
}

// Get returns the cached list, with false on a miss.
func (c *GoalsCache) Get(owner string, status goals.Status) ([]goals.Goal, bool) {
	listBytes, err := c.cache.Get(listKey(owner, status))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Warnf("goals cache get [%s] [%s]: %s", owner, status, err)
		}
		return nil, false
	}

	var list []goals.Goal
	if err := json.Unmarshal(listBytes, &list); err != nil {
		log.Errorf("unmarshal cached goals for [%s] [%s]: %s", owner, status, err)
		return nil, false
	}
	return list, true
}

func (c *GoalsCache) Set(owner string, status goals.Status, list []goals.Goal) {
	listBytes, err := json.Marshal(list)
	if err != nil {
		log.Errorf("marshal goals for cache [%s]: %s", owner, err)
		return
	}
	if err := c.cache.Set(listKey(owner, status), listBytes, c.expireSeconds); err != nil {
		log.Errorf("goals cache set [%s] [%s]: %s", owner, status, err)
	}
}

// InvalidateOwner drops every cached list of owner, whatever the status filter.
func (c *GoalsCache) InvalidateOwner(owner string) {
	c.cache.Del(listKey(owner, ""))
	for _, s := range goals.AllStatuses {
		c.cache.Del(listKey(owner, s))
	}
}

func (c *GoalsCache) Clear() {
	c.cache.Clear()
}
