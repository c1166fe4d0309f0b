package dto

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"staybook/internal/domain/availability"
	"staybook/internal/domain/shared/money"
)

var weekdays = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// FormatDateLabel renders a picker label such as "12月18日 (月)".
func FormatDateLabel(t time.Time) string {
	return fmt.Sprintf("%d月%d日 (%s)", int(t.Month()), t.Day(), weekdays[t.Weekday()])
}

// FormatYen renders an amount with ja-JP digit grouping, e.g. "¥15,000".
func FormatYen(m money.Money) string {
	p := message.NewPrinter(language.Japanese)
	if m.Amount < 0 {
		return p.Sprintf("-¥%d", -m.Amount)
	}
	return p.Sprintf("¥%d", m.Amount)
}

func FormatNightly(m money.Money) string {
	return FormatYen(m) + " / 泊"
}

// Glyph is the mark shown next to a date in the picker.
func Glyph(s availability.Status) string {
	switch s {
	case availability.Available:
		return "○"
	case availability.Limited:
		return "△"
	default:
		return "×"
	}
}
