package helper

import (
	"fmt"

	"github.com/ALuiell/Cinema/model"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// GenerateUniqueMovieSlug derives a slug from the movie's original name,
// suffixing a counter until it is free.
func GenerateUniqueMovieSlug(tx *gorm.DB, originalName string) string {
	base := slug.Make(originalName)
	result := base
	i := 1

	for {
		var count int64
		tx.Model(&model.Movie{}).
			Where("slug = ?", result).
			Count(&count)

		if count == 0 {
			break
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return result
}
