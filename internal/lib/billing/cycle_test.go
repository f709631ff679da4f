package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCycle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Cycle
		wantErr bool
	}{
		{name: "дневной цикл", input: "DAILY", want: Daily},
		{name: "недельный цикл", input: "WEEKLY", want: Weekly},
		{name: "месячный цикл", input: "MONTHLY", want: Monthly},
		{name: "годовой цикл", input: "YEARLY", want: Yearly},
		{name: "нижний регистр отклоняется", input: "monthly", wantErr: true},
		{name: "пустая строка отклоняется", input: "", wantErr: true},
		{name: "неизвестное значение отклоняется", input: "QUARTERLY", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCycle(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextPaymentDate(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		first time.Time
		cycle Cycle
		want  time.Time
	}{
		{name: "день", first: date(2025, 11, 16), cycle: Daily, want: date(2025, 11, 17)},
		{name: "неделя", first: date(2025, 11, 16), cycle: Weekly, want: date(2025, 11, 23)},
		{name: "месяц", first: date(2025, 11, 16), cycle: Monthly, want: date(2025, 12, 16)},
		{name: "год", first: date(2025, 11, 16), cycle: Yearly, want: date(2026, 11, 16)},
		{name: "месяц через границу года", first: date(2025, 12, 31), cycle: Monthly, want: date(2026, 1, 31)},
		{name: "31 января плюс месяц переполняется в март", first: date(2025, 1, 31), cycle: Monthly, want: date(2025, 3, 3)},
		{name: "29 февраля плюс год", first: date(2024, 2, 29), cycle: Yearly, want: date(2025, 3, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextPaymentDate(tt.first, tt.cycle)
			assert.Equal(t, tt.want, got)
		})
	}
}
