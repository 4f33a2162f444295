package service

import "errors"

// Классы ошибок сервисного слоя. Обработчики переводят их в HTTP коды,
// конкретные причины добавляются обёрткой через fmt.Errorf("%w: ...")
var (
	ErrNotFound          = errors.New("объект не найден")
	ErrConflict          = errors.New("конфликт данных")
	ErrInvalidTransition = errors.New("недопустимый переход статуса")
	ErrBadRequest        = errors.New("некорректный запрос")
)
