package router

import (
	"github.com/gin-gonic/gin"

	"SkyVault/internal/handler"
	"SkyVault/utils"
)

// InitRouter builds API routes.
func InitRouter() *gin.Engine {
	r := gin.Default()
	r.Use(utils.CORSMiddleware())

	// anonymous share surface; the token is the whole credential
	r.GET("/share/:token", handler.ShareDownload)

	api := r.Group("/api")
	{
		auth := api.Group("")
		auth.Use(utils.AuthMiddleware())

		file := auth.Group("/file")
		{
			file.POST("/upload", handler.UploadFile)
			file.POST("/list", handler.ListFiles)
			file.POST("/delete", handler.DeleteFile)
			file.POST("/download", handler.DownloadFile)
		}

		folder := auth.Group("/folder")
		{
			folder.POST("/create", handler.CreateFolder)
			folder.POST("/list", handler.ListFolders)
			folder.POST("/delete", handler.DeleteFolder)
		}

		share := auth.Group("/share")
		{
			share.POST("/create", handler.CreateShareHandler)
			share.POST("/revoke", handler.RevokeShareHandler)
			share.GET("/list", handler.ListShares)
		}
	}
	return r
}
