package filestorage

import (
	"github.com/andrewyi/uninews/src/entity"
)

type FileStorage interface {
	Store(path string, rows []entity.ArticleRow) error
}
