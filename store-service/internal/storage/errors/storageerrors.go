package storerrors

import "errors"

var ErrBookNoExist = errors.New("book does not exist")
