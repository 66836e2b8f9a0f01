package club

import (
	"fmt"
	"strings"
)

// Club is a real football club whose players can be picked.
type Club struct {
	ID        string
	Name      string
	ShortName string
	City      string
}

func (c Club) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("club id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("club name is required")
	}
	if n := len([]rune(strings.TrimSpace(c.ShortName))); n < 2 || n > 4 {
		return fmt.Errorf("club short name must be 2-4 characters")
	}
	return nil
}
