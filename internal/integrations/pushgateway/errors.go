package pushgateway

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("pushgateway client: internal error")

	// ErrUnavailable шлюз недоступен или ответил 5xx, доставку можно повторить
	ErrUnavailable = errors.New("pushgateway client: gateway unavailable")

	// ErrRejected шлюз отклонил сообщение как некорректное
	ErrRejected = errors.New("pushgateway client: message rejected")
)
