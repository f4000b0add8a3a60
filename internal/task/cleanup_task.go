// Package task creates and processes orphan-cleanup tasks. An orphan is an
// object whose compensating delete failed after a catalog write went wrong;
// the worker retires it asynchronously so storage does not leak.
package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"SkyVault/internal/mq"
	"SkyVault/internal/repo"
	"SkyVault/internal/storage"
	"SkyVault/model"
	"SkyVault/utils"
)

// CleanupMessage is the payload sent to the worker.
type CleanupMessage struct {
	TaskID  string `json:"task_id"`
	Attempt int    `json:"attempt"`
}

// CreateCleanupTask records an orphaned object and enqueues its removal.
func CreateCleanupTask(ctx context.Context, bucket, objectPath string, cause error) (*model.CleanupTask, error) {
	if repo.Db == nil {
		return nil, errors.New("database not initialized")
	}
	task := &model.CleanupTask{
		TaskID:      utils.GetToken(),
		Bucket:      bucket,
		StoragePath: objectPath,
		Status:      model.CleanupPending,
		LastError:   cause.Error(),
	}
	if err := repo.Db.Create(task).Error; err != nil {
		return nil, err
	}
	msg := CleanupMessage{
		TaskID:  task.TaskID,
		Attempt: 0,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		markCleanupTaskFailed(task.TaskID, err)
		return nil, err
	}
	publisher, err := mq.GetPublisher()
	if err != nil {
		markCleanupTaskFailed(task.TaskID, err)
		return nil, err
	}
	if err := publisher.PublishTask(ctx, body); err != nil {
		markCleanupTaskFailed(task.TaskID, err)
		return nil, err
	}
	return task, nil
}

// ProcessCleanupTask deletes the orphaned object for one task.
func ProcessCleanupTask(ctx context.Context, taskID string) error {
	var task model.CleanupTask
	if err := repo.Db.Where("task_id = ?", taskID).First(&task).Error; err != nil {
		return err
	}
	if task.Status == model.CleanupDone {
		return nil
	}
	if storage.Default == nil {
		return fmt.Errorf("storage not initialized")
	}
	if err := storage.Default.RemoveObject(ctx, task.Bucket, task.StoragePath); err != nil {
		return err
	}
	now := time.Now()
	if err := repo.Db.Model(&model.CleanupTask{}).
		Where("task_id = ?", taskID).
		Updates(map[string]interface{}{
			"status":     model.CleanupDone,
			"updated_at": now,
		}).Error; err != nil {
		return err
	}
	log.Printf("[cleanup] removed orphan %s/%s", task.Bucket, task.StoragePath)
	return nil
}

func markCleanupTaskFailed(taskID string, cause error) {
	if repo.Db == nil {
		return
	}
	if err := repo.Db.Model(&model.CleanupTask{}).
		Where("task_id = ?", taskID).
		Updates(map[string]interface{}{
			"status":     model.CleanupFailed,
			"last_error": cause.Error(),
		}).Error; err != nil {
		log.Printf("[cleanup] mark failed error: %v", err)
	}
}
