package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSandboxDocNotFound = errors.New("sandbox document not found")

// SandboxService holds user-authored script bodies extracted at render
// time. Each document is served once-removed from the profile page, in
// an isolated browsing context with no access to the host page's DOM,
// cookies or other profiles' data. Documents are keyed per (profile,
// section, script index) so a re-render replaces the previous scripts
// in place, and a tracking set per profile makes teardown cheap; the
// TTL bounds anything a teardown misses.
type SandboxService struct {
	redis *redis.Client
	ttl   time.Duration
}

// Ensure SandboxService implements ISandboxService
var _ ISandboxService = (*SandboxService)(nil)

// NewSandboxService creates a new SandboxService instance.
func NewSandboxService(redisClient *redis.Client) *SandboxService {
	return &SandboxService{redis: redisClient, ttl: 15 * time.Minute}
}

func sandboxDocKey(docID string) string   { return "sandbox:doc:" + docID }
func sandboxSetKey(profile string) string { return "sandbox:profile:" + profile }

// Put stores a script body and returns the document ID the sandbox
// endpoint serves it under. The ID is derived from (profile, section,
// index) so repeated renders of the same section reuse its slots while
// each script within a section keeps a document of its own.
func (s *SandboxService) Put(ctx context.Context, profileID, sectionID string, index int, script string) (string, error) {
	docID := uuid.NewSHA1(uuid.NameSpaceURL, []byte(profileID+"/"+sectionID+"/"+strconv.Itoa(index))).String()

	pipe := s.redis.TxPipeline()
	pipe.Set(ctx, sandboxDocKey(docID), script, s.ttl)
	pipe.SAdd(ctx, sandboxSetKey(profileID), docID)
	pipe.Expire(ctx, sandboxSetKey(profileID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to store sandbox document: %w", err)
	}
	return docID, nil
}

// Get retrieves a stored script body.
func (s *SandboxService) Get(ctx context.Context, docID string) (string, error) {
	script, err := s.redis.Get(ctx, sandboxDocKey(docID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSandboxDocNotFound
	}
	if err != nil {
		return "", err
	}
	return script, nil
}

// Teardown removes every outstanding sandbox document for a profile.
// Called before each render and when a profile is deleted.
func (s *SandboxService) Teardown(ctx context.Context, profileID string) error {
	docIDs, err := s.redis.SMembers(ctx, sandboxSetKey(profileID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	if len(docIDs) == 0 {
		return nil
	}
	pipe := s.redis.TxPipeline()
	for _, id := range docIDs {
		pipe.Del(ctx, sandboxDocKey(id))
	}
	pipe.Del(ctx, sandboxSetKey(profileID))
	_, err = pipe.Exec(ctx)
	return err
}
