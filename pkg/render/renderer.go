package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// PageSize — размер страницы в дюймах, как его принимает принтер Chrome.
type PageSize struct {
	WidthIn  float64
	HeightIn float64
}

var (
	// A4: 210mm x 297mm
	PageA4 = PageSize{WidthIn: 8.27, HeightIn: 11.69}
	// US Letter: 8.5" x 11"
	PageLetter = PageSize{WidthIn: 8.5, HeightIn: 11}
)

// PageSizeFor маппит настройку документа на размер бумаги; неизвестное
// значение трактуется как A4.
func PageSizeFor(documentSize string) PageSize {
	if strings.EqualFold(strings.TrimSpace(documentSize), "letter") {
		return PageLetter
	}
	return PageA4
}

// Renderer — порт дорогого рендера HTML в PDF. Реализация обязана быть
// детерминированной для одинаковых входов (на этом стоит кеш) и возвращать
// ошибку, а не падать, на неподдерживаемых конфигурациях.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string, size PageSize) ([]byte, error)
}

// ErrUnsupportedFont помечает известную причину отказа рендера — шрифт,
// который вёрстка не может отобразить. Отличается от прочих RenderFailure,
// чтобы пользователь получил адресную диагностику, а не общее "не вышло".
var ErrUnsupportedFont = errors.New("unsupported font family")

// UnsupportedFontError оборачивает ErrUnsupportedFont с именем шрифта.
func UnsupportedFontError(family string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFont, family)
}

// IsUnsupportedFont сообщает, вызван ли отказ рендера шрифтом.
func IsUnsupportedFont(err error) bool {
	return errors.Is(err, ErrUnsupportedFont)
}
