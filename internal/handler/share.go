package handler

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"SkyVault/internal/dto"
	"SkyVault/internal/service"
	"SkyVault/utils"
)

// CreateShareHandler issues a share link for an unencrypted file.
func CreateShareHandler(c *gin.Context) {
	ownerID := utils.OwnerID(c)

	var req dto.CreateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"msg": "invalid params"})
		return
	}

	ttl := time.Duration(req.TTLHours) * time.Hour
	share, err := service.IssueShare(c.Request.Context(), ownerID, req.FileID, ttl)
	if err != nil {
		fail(c, err)
		return
	}
	url := service.ShareURL(share.Token)

	if req.NotifyEmail != "" {
		file, fileErr := service.GetFile(c.Request.Context(), ownerID, req.FileID)
		name := req.FileID
		if fileErr == nil {
			name = file.Name
		}
		if err := utils.SendShareMail(req.NotifyEmail, name, url); err != nil {
			log.Printf("[CreateShare] notify mail failed: %v", err)
		}
	}

	utils.Success(c, dto.ShareResponse{
		Token:     share.Token,
		URL:       url,
		ExpiresAt: share.ExpiresAt,
	})
}

// ListShares lists the caller's share links.
func ListShares(c *gin.Context) {
	ownerID := utils.OwnerID(c)

	shares, err := service.ListShares(c.Request.Context(), ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, shares)
}

// RevokeShareHandler revokes a share link.
func RevokeShareHandler(c *gin.Context) {
	ownerID := utils.OwnerID(c)

	var req dto.RevokeShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"msg": "invalid params"})
		return
	}

	if err := service.RevokeShare(c.Request.Context(), ownerID, req.Token); err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, nil)
}

// ShareDownload serves a shared file anonymously. The token is the entire
// credential; expiry is re-checked on every hit. Only unencrypted files can
// be shared, so this always ends in a signed-URL redirect.
func ShareDownload(c *gin.Context) {
	token := c.Param("token")

	file, err := service.ResolveShare(c.Request.Context(), token)
	if err != nil {
		fail(c, err)
		return
	}

	result, err := service.ResolveDownload(c.Request.Context(), file, "")
	if err != nil {
		fail(c, err)
		return
	}
	c.Redirect(302, result.URL)
}
