package valueobjects

import "fmt"

type Category string

const (
	CategoryGeneral  Category = "General"
	CategoryHardware Category = "Hardware"
	CategorySoftware Category = "Software"
	CategoryNetwork  Category = "Network"
	CategorySecurity Category = "Security"
	CategoryAccount  Category = "Account"
)

var validCategories = map[Category]bool{
	CategoryGeneral:  true,
	CategoryHardware: true,
	CategorySoftware: true,
	CategoryNetwork:  true,
	CategorySecurity: true,
	CategoryAccount:  true,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
