package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"SkyVault/internal/dto"
	"SkyVault/internal/service"
	"SkyVault/utils"
)

// ListFiles lists the caller's files, optionally scoped to one folder.
func ListFiles(c *gin.Context) {
	ownerID := utils.OwnerID(c)

	var req dto.ListFilesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"msg": "invalid params"})
		return
	}

	if req.All {
		files, err := service.ListFiles(c.Request.Context(), ownerID)
		if err != nil {
			fail(c, err)
			return
		}
		utils.Success(c, files)
		return
	}

	files, err := service.ListFilesInFolder(c.Request.Context(), ownerID, req.FolderID)
	if err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, files)
}

// DeleteFile removes a file record together with its object.
func DeleteFile(c *gin.Context) {
	ownerID := utils.OwnerID(c)

	var req dto.DeleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"msg": "invalid params"})
		return
	}

	if err := service.DeleteFile(c.Request.Context(), ownerID, req.FileID); err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, nil)
}

// DownloadFile resolves a file for the owner. Plain files answer with a
// signed URL; encrypted files are decrypted with the supplied passphrase
// and streamed back.
func DownloadFile(c *gin.Context) {
	ownerID := utils.OwnerID(c)

	var req dto.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"msg": "invalid params"})
		return
	}

	file, err := service.GetFile(c.Request.Context(), ownerID, req.FileID)
	if err != nil {
		fail(c, err)
		return
	}
	result, err := service.ResolveDownload(c.Request.Context(), file, req.Passphrase)
	if err != nil {
		fail(c, err)
		return
	}

	if result.URL != "" {
		utils.Success(c, dto.DownloadURLResponse{
			URL:      result.URL,
			Name:     result.Name,
			MimeType: result.MimeType,
			Size:     result.Size,
		})
		return
	}

	safeName := utils.SanitizeHeaderFilename(result.Name)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, safeName))
	contentType := result.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(200, contentType, result.Data)
}
