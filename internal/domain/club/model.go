package club

import "fmt"

// Club is a manager-controlled team that buys and sells players.
type Club struct {
	ID            int64
	Name          string
	ShortName     string
	ManagerUserID string
	Budget        int64
}

func (c Club) Validate() error {
	if c.ID <= 0 {
		return fmt.Errorf("club id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("club name is required")
	}
	if c.Budget < 0 {
		return fmt.Errorf("club budget cannot be negative")
	}

	return nil
}

func (c Club) ManagedBy(userID string) bool {
	return userID != "" && c.ManagerUserID == userID
}
