package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domain/availability"
	"staybook/internal/domain/listings"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "TIMEZONE", "WINDOW_DAYS", "WINDOW_START", "AVAILABILITY_MODE", "KAFKA_BROKERS", "MONGO_URI"} {
		t.Setenv(key, "")
	}
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "Asia/Tokyo", cfg.Timezone.String())
	assert.Equal(t, 7, cfg.WindowDays)
	assert.True(t, cfg.WindowStart.IsZero())
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "random", cfg.AvailabilityMode)
	assert.Equal(t, []time.Duration{time.Second, 5 * time.Second, 30 * time.Second}, cfg.RetryBackoff)
	assert.False(t, cfg.OutboxEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("WINDOW_DAYS", "14")
	t.Setenv("WINDOW_START", "2023-12-18")
	t.Setenv("AVAILABILITY_MODE", "Calendar")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.WindowDays)
	assert.Equal(t, time.Date(2023, time.December, 18, 0, 0, 0, 0, time.UTC), cfg.WindowStart)
	assert.Equal(t, "calendar", cfg.AvailabilityMode)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.OutboxEnabled())
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"WINDOW_DAYS", "0"},
		{"WINDOW_DAYS", "seven"},
		{"WINDOW_START", "18/12/2023"},
		{"TIMEZONE", "Mars/Olympus"},
		{"AVAILABILITY_MODE", "psychic"},
		{"SESSION_TTL", "forever"},
		{"RETRY_BACKOFF", "1s,soon"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("STAYBOOK_TEST_VALUE=from-file\n"), 0o600))
	t.Setenv("STAYBOOK_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("STAYBOOK_TEST_VALUE"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("STAYBOOK_TEST_VALUE"))
}

const fixtureYAML = `
listings:
  - id: cottage
    title: Cottage
    max_guests: 4
    nightly_rate: {amount: 15000}
    cleaning_fee: {amount: 5000}
    amenities: [Wi-Fi]
    blocks:
      - from: "2023-12-20"
        to: "2023-12-22"
`

func TestLoadListings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o600))

	file, err := LoadListings(path)
	require.NoError(t, err)
	require.Len(t, file.Listings, 1)

	p := file.Listings[0].Property()
	assert.Equal(t, "JPY", p.NightlyRate.Currency)
	assert.Equal(t, "JPY", p.CleaningFee.Currency)
	assert.Equal(t, int64(15000), p.NightlyRate.Amount)

	cal, err := file.Listings[0].Calendar(Config{Timezone: time.UTC})
	require.NoError(t, err)
	require.Len(t, cal.Blocks, 1)
	assert.Equal(t, availability.ReasonHostBlock, cal.Blocks[0].Reason)
	assert.Empty(t, cal.PendingEvents())
	assert.Equal(t, availability.Unavailable, cal.StatusOn(time.Date(2023, time.December, 21, 0, 0, 0, 0, time.UTC)))
}

func TestLoadListingsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "no guests",
			yaml: "listings:\n  - id: x\n    title: X\n    max_guests: 0\n",
			want: listings.ErrGuestsLimit,
		},
		{
			name: "yen rate with dollar fee",
			yaml: "listings:\n  - id: x\n    title: X\n    max_guests: 2\n    nightly_rate: {amount: 15000, currency: JPY}\n    cleaning_fee: {amount: 50, currency: USD}\n",
			want: listings.ErrCurrency,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "listings.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))
			_, err := LoadListings(path)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := LoadListings(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestShippedFixtures(t *testing.T) {
	file, err := LoadListings(filepath.Join("..", "..", "..", "data", "listings.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, file.Listings)
	cottage := file.Listings[0].Property()
	assert.Equal(t, int64(15000), cottage.NightlyRate.Amount)
	assert.Equal(t, 4, cottage.MaxGuests)
}
