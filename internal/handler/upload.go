package handler

import (
	"io"
	"log"

	"github.com/gin-gonic/gin"

	"SkyVault/internal/dto"
	"SkyVault/internal/service"
	"SkyVault/utils"
)

// UploadFile accepts a multipart upload with optional passphrase
// encryption.
func UploadFile(c *gin.Context) {
	ownerID := utils.OwnerID(c)

	var form dto.UploadForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(400, gin.H{"msg": "invalid params"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"msg": "file required"})
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(400, gin.H{"msg": "file unreadable"})
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(400, gin.H{"msg": "file unreadable"})
		return
	}

	var folderID *string
	if form.FolderID != "" {
		folderID = &form.FolderID
	}

	req := service.UploadRequest{
		OwnerID:    ownerID,
		Name:       fileHeader.Filename,
		MimeType:   fileHeader.Header.Get("Content-Type"),
		Data:       data,
		FolderID:   folderID,
		Encrypt:    form.Encrypt,
		Passphrase: form.Passphrase,
		Progress: func(pct int) {
			log.Printf("[UploadFile] %s %s: %d%%", ownerID, fileHeader.Filename, pct)
		},
	}
	file, err := service.Upload(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, file)
}
