package listings

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"staybook/internal/domain/shared/money"
)

func TestValidateGuestCount(t *testing.T) {
	tests := []struct {
		guests int
		want   bool
	}{
		{-1, false},
		{0, false},
		{1, true},
		{2, true},
		{3, true},
		{4, true},
		{5, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidateGuestCount(tt.guests, 4), "guests=%d", tt.guests)
	}
	assert.False(t, ValidateGuestCount(1, 0), "a property without capacity accepts nobody")
}

func TestPropertyValidate(t *testing.T) {
	valid := func() *Property {
		return &Property{
			ID:          "cottage",
			Title:       "海辺の素敵なコテージ",
			MaxGuests:   4,
			NightlyRate: money.Yen(15000),
			CleaningFee: money.Yen(5000),
		}
	}

	tests := []struct {
		name   string
		mutate func(p *Property)
		want   error
	}{
		{"valid", func(p *Property) {}, nil},
		{"missing id", func(p *Property) { p.ID = " " }, ErrIDRequired},
		{"missing title", func(p *Property) { p.Title = "" }, ErrTitleRequired},
		{"no guests", func(p *Property) { p.MaxGuests = 0 }, ErrGuestsLimit},
		{"negative rate", func(p *Property) { p.NightlyRate = money.Yen(-1) }, ErrNightlyRate},
		{"negative fee", func(p *Property) { p.CleaningFee = money.Yen(-1) }, ErrCleaningFee},
		{"yen rate with dollar fee", func(p *Property) { p.CleaningFee = money.Must(5000, "USD") }, ErrCurrency},
		{"fee without currency", func(p *Property) { p.CleaningFee = money.Money{Amount: 5000} }, ErrCurrency},
		{"rate without currency", func(p *Property) { p.NightlyRate = money.Money{Amount: 15000} }, ErrCurrency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)
			err := p.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPropertyCloneAndGuests(t *testing.T) {
	p := &Property{ID: "cottage", MaxGuests: 4, Amenities: []string{"Wi-Fi"}}
	clone := p.Clone()
	clone.Amenities[0] = "キッチン"
	assert.Equal(t, "Wi-Fi", p.Amenities[0])
	assert.True(t, p.AcceptsGuests(4))
	assert.False(t, p.AcceptsGuests(5))

	var nilProp *Property
	assert.Nil(t, nilProp.Clone())
}
