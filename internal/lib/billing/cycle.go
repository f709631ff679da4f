// Package billing реализует расчёт даты следующего платежа подписки
// на основе периодичности списаний (billing cycle).
package billing

import (
	"fmt"
	"time"
)

// Cycle — периодичность списаний по подписке.
type Cycle string

const (
	// Daily — списание раз в день.
	Daily Cycle = "DAILY"
	// Weekly — списание раз в неделю.
	Weekly Cycle = "WEEKLY"
	// Monthly — списание раз в месяц.
	Monthly Cycle = "MONTHLY"
	// Yearly — списание раз в год.
	Yearly Cycle = "YEARLY"
)

// ParseCycle проверяет строковое значение периодичности и возвращает Cycle.
// Любое значение вне перечисления отклоняется с ошибкой.
func ParseCycle(s string) (Cycle, error) {
	switch Cycle(s) {
	case Daily, Weekly, Monthly, Yearly:
		return Cycle(s), nil
	default:
		return "", fmt.Errorf("unknown billing cycle: %q", s)
	}
}

// NextPaymentDate возвращает дату следующего платежа: ровно один период
// цикла от даты первого платежа. Переполнение дня месяца при месячном и
// годовом шаге следует календарным правилам time.AddDate (31 января + месяц
// даёт 2/3 марта). Дата всегда считается от первого платежа, а не от "сегодня".
func NextPaymentDate(first time.Time, cycle Cycle) time.Time {
	switch cycle {
	case Daily:
		return first.AddDate(0, 0, 1)
	case Weekly:
		return first.AddDate(0, 0, 7)
	case Monthly:
		return first.AddDate(0, 1, 0)
	case Yearly:
		return first.AddDate(1, 0, 0)
	}
	// ParseCycle отсекает прочие значения на границе ввода.
	return first
}
