// Package cache provides a generic in-memory LRU cache with per-entry TTL.
//
// The directory service uses it to remember company names resolved from
// linked records so that listing a page of members costs one request per
// unknown company instead of one per member.
//
//	names := cache.NewLRU[string, string](512, 10*time.Minute)
//	names.Set("recCompany1", "Acme")
//	name, ok := names.Get("recCompany1")
package cache
