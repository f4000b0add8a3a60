package service

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BuildStoragePath derives an object key of the form
// {ownerID}/{epochMillis}-{randomToken}.{ext}. The timestamp plus random
// token makes collisions with existing objects practically impossible, so a
// put under this key never overwrites another object.
func BuildStoragePath(ownerID, fileName string) string {
	ext := strings.TrimPrefix(path.Ext(fileName), ".")
	if ext == "" {
		ext = "bin"
	}
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s/%d-%s.%s", ownerID, time.Now().UnixMilli(), token, ext)
}
