package category

import "errors"

var ErrCategoryDoesNotExist = errors.New("category does not exist")
