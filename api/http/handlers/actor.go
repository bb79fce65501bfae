package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actor извлекает идентификатор пользователя и признак админа,
// проставленные JWT-миддлварой.
func actor(c *fiber.Ctx) (uuid.UUID, bool) {
	isAdmin, _ := c.Locals("isAdmin").(bool)
	idStr, _ := c.Locals("userId").(string)
	uid, _ := uuid.Parse(idStr)
	return uid, isAdmin
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}
