package identity

import (
	"context"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Resolver is the identity surface consumed by the catalog services.
type Resolver interface {
	// Resolve never fails; unreachable upstream yields the degraded default.
	Resolve(ctx context.Context, userID uint, token string) UserInfo
	// ResolveMany drops ids whose lookup failed.
	ResolveMany(ctx context.Context, userIDs []uint, token string) []UserInfo
	// Lookup reports upstream failure instead of degrading.
	Lookup(ctx context.Context, userID uint, token string) (*UserInfo, error)
}

// Gateway resolves user identities with a cache in front of the network call
// and a degraded default behind it, so catalog rendering never blocks on
// user-service health.
type Gateway struct {
	client *Client
	cache  Cache
}

func NewGateway(client *Client, cache Cache) *Gateway {
	return &Gateway{client: client, cache: cache}
}

// FallbackUser is the placeholder identity used when the user service
// cannot be reached.
func FallbackUser(userID uint) UserInfo {
	return UserInfo{
		ID:       userID,
		Username: "unknown",
		Email:    "unknown@example.com",
		Name:     "unknown",
		Role:     RoleUser,
		IsActive: true,
	}
}

func (g *Gateway) Resolve(ctx context.Context, userID uint, token string) UserInfo {
	info, err := g.Lookup(ctx, userID, token)
	if err != nil {
		log.Printf("identity lookup failed for user %d, using fallback: %v", userID, err)
		return FallbackUser(userID)
	}
	return *info
}

// Lookup consults the cache first; cache failures are logged and treated as
// misses. Successful network lookups are cached best-effort.
func (g *Gateway) Lookup(ctx context.Context, userID uint, token string) (*UserInfo, error) {
	if info, ok, err := g.cache.Get(userID); err != nil {
		log.Printf("identity cache get failed for user %d: %v", userID, err)
	} else if ok {
		return info, nil
	}

	info, err := g.client.FetchUser(ctx, userID, normalizeBearer(token))
	if err != nil {
		return nil, err
	}

	if err := g.cache.Set(userID, info); err != nil {
		log.Printf("identity cache set failed for user %d: %v", userID, err)
	}
	return info, nil
}

func (g *Gateway) ResolveMany(ctx context.Context, userIDs []uint, token string) []UserInfo {
	results := make([]*UserInfo, len(userIDs))

	var eg errgroup.Group
	for i, userID := range userIDs {
		i, userID := i, userID
		eg.Go(func() error {
			info, err := g.Lookup(ctx, userID, token)
			if err != nil {
				log.Printf("identity lookup failed for user %d, dropping from batch: %v", userID, err)
				return nil
			}
			results[i] = info
			return nil
		})
	}
	eg.Wait()

	resolved := make([]UserInfo, 0, len(userIDs))
	for _, info := range results {
		if info != nil {
			resolved = append(resolved, *info)
		}
	}
	return resolved
}

// normalizeBearer reduces whatever the caller sent to a single "Bearer "
// prefix before the token is forwarded upstream.
func normalizeBearer(token string) string {
	t := strings.TrimSpace(token)
	for strings.HasPrefix(t, "Bearer ") {
		t = strings.TrimSpace(strings.TrimPrefix(t, "Bearer "))
	}
	return "Bearer " + t
}
