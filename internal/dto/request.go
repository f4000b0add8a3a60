package dto

type UploadForm struct {
	FolderID   string `form:"folder_id"`
	Encrypt    bool   `form:"encrypt"`
	Passphrase string `form:"passphrase"`
}

type ListFilesRequest struct {
	FolderID *string `json:"folder_id"`
	All      bool    `json:"all"`
}

type DeleteFileRequest struct {
	FileID string `json:"file_id" binding:"required"`
}

type DownloadRequest struct {
	FileID     string `json:"file_id" binding:"required"`
	Passphrase string `json:"passphrase"`
}

type CreateFolderRequest struct {
	Name     string  `json:"name" binding:"required"`
	ParentID *string `json:"parent_id"`
}

type ListFoldersRequest struct {
	ParentID *string `json:"parent_id"`
}

type DeleteFolderRequest struct {
	FolderID string `json:"folder_id" binding:"required"`
}

type CreateShareRequest struct {
	FileID      string `json:"file_id" binding:"required"`
	TTLHours    int    `json:"ttl_hours"`
	NotifyEmail string `json:"notify_email"`
}

type RevokeShareRequest struct {
	Token string `json:"token" binding:"required"`
}
