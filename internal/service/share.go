package service

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/net/context"

	"SkyVault/config"
	"SkyVault/internal/errs"
	"SkyVault/internal/notify"
	"SkyVault/internal/repo"
	"SkyVault/model"
	"SkyVault/utils"
)

func shareCacheKey(token string) string {
	return "share:" + token
}

// ShareURL builds the public URL for a token. The token is the entire
// access-control mechanism; the URL needs no authentication.
func ShareURL(token string) string {
	return config.AppConfig.ShareBaseURL + "/share/" + token
}

// IssueShare mints a new time-bounded share link for a file. Every call
// produces an independent token; several links may be live for the same
// file at once. Encrypted files cannot be shared: the link grants anonymous
// access and there is no channel to carry a passphrase.
func IssueShare(ctx context.Context, ownerID, fileID string, ttl time.Duration) (*model.ShareLink, error) {
	file, err := GetFile(ctx, ownerID, fileID)
	if err != nil {
		return nil, err
	}
	if file.IsEncrypted {
		return nil, fmt.Errorf("%w: encrypted files cannot be shared", errs.ErrValidation)
	}
	if ttl <= 0 {
		ttl = config.AppConfig.ShareDefaultTTL
	}

	share := &model.ShareLink{
		Token:     utils.GetToken(),
		FileID:    file.ID,
		OwnerID:   ownerID,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := repo.Default.InsertShare(ctx, share); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMetadata, err)
	}

	if repo.Redis != nil {
		key := shareCacheKey(share.Token)
		value, _ := json.Marshal(share)
		if err := repo.Redis.Set(ctx, key, value, time.Until(share.ExpiresAt)).Err(); err != nil {
			log.Printf("[IssueShare] cache set failed for %s: %v", key, err)
		}
	}
	notify.Publish(ctx, notify.TableShares, notify.EventInsert, ownerID, file.ID)
	return share, nil
}

// ResolveShare resolves a token to its file. Expiry is re-checked against
// the clock on every call, so a link that expires mid-session stops
// granting access on its very next resolution.
func ResolveShare(ctx context.Context, token string) (*model.File, error) {
	share, err := lookupShare(ctx, token)
	if err != nil {
		return nil, err
	}
	if !time.Now().Before(share.ExpiresAt) {
		return nil, errs.ErrExpired
	}

	file, err := repo.Default.FileByID(ctx, share.FileID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrMetadata, err)
	}
	return file, nil
}

func lookupShare(ctx context.Context, token string) (*model.ShareLink, error) {
	if repo.Redis != nil {
		val, err := repo.Redis.Get(ctx, shareCacheKey(token)).Result()
		if err == nil {
			var share model.ShareLink
			if err := json.Unmarshal([]byte(val), &share); err == nil {
				return &share, nil
			}
		} else if err != redis.Nil {
			log.Printf("[ResolveShare] cache get failed: %v", err)
		}
	}

	share, err := repo.Default.ShareByToken(ctx, token)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrMetadata, err)
	}
	return share, nil
}

// RevokeShare deletes a share link. Revocation is terminal: the record is
// removed entirely, and the token stops resolving immediately.
func RevokeShare(ctx context.Context, ownerID, token string) error {
	if ownerID == "" {
		return errs.ErrUnauthenticated
	}
	share, err := repo.Default.ShareByToken(ctx, token)
	if err != nil {
		if repo.IsNotFound(err) {
			return errs.ErrNotFound
		}
		return fmt.Errorf("%w: %v", errs.ErrMetadata, err)
	}
	if share.OwnerID != ownerID {
		return errs.ErrNotFound
	}
	if err := repo.Default.DeleteShareByToken(ctx, token); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrMetadata, err)
	}
	if repo.Redis != nil {
		if err := repo.Redis.Del(ctx, shareCacheKey(token)).Err(); err != nil {
			log.Printf("[RevokeShare] cache del failed: %v", err)
		}
	}
	notify.Publish(ctx, notify.TableShares, notify.EventDelete, ownerID, share.FileID)
	return nil
}

// ListShares returns an owner's share links, most recent first.
func ListShares(ctx context.Context, ownerID string) ([]model.ShareLink, error) {
	if ownerID == "" {
		return nil, errs.ErrUnauthenticated
	}
	shares, err := repo.Default.SharesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMetadata, err)
	}
	return shares, nil
}
