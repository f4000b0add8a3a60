package handler

import (
	"github.com/gin-gonic/gin"

	"SkyVault/internal/dto"
	"SkyVault/internal/service"
	"SkyVault/utils"
)

// CreateFolder creates a folder under an optional parent.
func CreateFolder(c *gin.Context) {
	ownerID := utils.OwnerID(c)

	var req dto.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"msg": "invalid params"})
		return
	}

	folder, err := service.CreateFolder(c.Request.Context(), ownerID, req.Name, req.ParentID)
	if err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, folder)
}

// ListFolders lists the caller's folders under one parent.
func ListFolders(c *gin.Context) {
	ownerID := utils.OwnerID(c)

	var req dto.ListFoldersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"msg": "invalid params"})
		return
	}

	folders, err := service.ListFolders(c.Request.Context(), ownerID, req.ParentID)
	if err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, folders)
}

// DeleteFolder removes a folder. Files inside are not deleted and not
// reassigned.
func DeleteFolder(c *gin.Context) {
	ownerID := utils.OwnerID(c)

	var req dto.DeleteFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"msg": "invalid params"})
		return
	}

	if err := service.DeleteFolder(c.Request.Context(), ownerID, req.FolderID); err != nil {
		fail(c, err)
		return
	}
	utils.Success(c, nil)
}
