package domain

// Business validation constants
const (
	MinModelYear       = 1950
	MaxModelYearsAhead = 2 // модельный год может опережать текущий максимум на 2

	MinDailyRate = 0.0
	MaxDailyRate = 100000.0

	MaxMakeLength         = 64
	MaxModelLength        = 64
	MaxLicensePlateLength = 16
	MaxVINLength          = 17
)

// Time format constants
const (
	// TimestampFormat формат инстантов в API (RFC 3339)
	TimestampFormat = "2006-01-02T15:04:05Z07:00"
)
