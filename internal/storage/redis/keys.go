package redis

import (
	"fmt"

	"github.com/mcoot/rockquest-admin/internal/model"
)

// sessionKey returns the Redis key for a Session
func (s *Storage) sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", s.cfg.KeyPrefix, id)
}
