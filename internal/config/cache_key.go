package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// RevokedTokenKey returns the cache key marking a JWT (by jti) as logged out
func (r *CacheKeyStruct) RevokedTokenKey(jti string) string {
	return fmt.Sprintf("auth:revoked:%s", jti)
}

// CollegeStatsKey returns the cache key for a college's dashboard counters
func (r *CacheKeyStruct) CollegeStatsKey(collegeID string) string {
	return fmt.Sprintf("college:%s:stats", collegeID)
}

var CacheKey = NewCacheKeyStruct()
