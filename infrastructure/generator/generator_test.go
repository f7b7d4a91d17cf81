package generator

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGeneratePasswordIsStrong(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(-1, 40).Draw(rt, "length")
		p := GeneratePassword(n)
		want := n
		if n <= 0 {
			want = DefaultPasswordLength
		} else if n < 4 {
			want = 4
		}
		if len(p) != want {
			rt.Fatalf("len(%q) = %d, want %d", p, len(p), want)
		}
		if !isStrong(p) {
			rt.Fatalf("password %q lacks a required character class", p)
		}
	})
}

func TestCustomID(t *testing.T) {
	id := CustomID(12)
	assert.Len(t, id, 12)
	assert.Empty(t, strings.Trim(id, lower+digits))
}

func TestRandomAlphanumeric(t *testing.T) {
	assert.Len(t, RandomAlphanumeric(0), 10)
	s := RandomAlphanumeric(32)
	assert.Empty(t, strings.Trim(s, lower+upper+digits))
}

func TestWaitForNextMinute(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	var slept time.Duration
	sleep := func(d time.Duration) { slept += d }

	assert.False(t, waitForNextMinute(time.Date(2024, 1, 1, 9, 0, 39, 0, time.UTC), sleep, logger))
	assert.Zero(t, slept)

	assert.True(t, waitForNextMinute(time.Date(2024, 1, 1, 9, 0, 40, 0, time.UTC), sleep, logger))
	assert.Equal(t, 20*time.Second, slept)
}

func TestTimeDifference(t *testing.T) {
	h, m, err := TimeDifference("9:15 AM", "11:20 AM")
	require.NoError(t, err)
	assert.Equal(t, "2h", h)
	assert.Equal(t, "05m", m)

	h, m, err = TimeDifference("11:30 PM", "12:15 AM")
	require.NoError(t, err)
	assert.Equal(t, "0h", h)
	assert.Equal(t, "45m", m)

	_, _, err = TimeDifference("25:00", "1:00 PM")
	assert.Error(t, err)
}

func TestTimeToSeconds(t *testing.T) {
	tests := map[string]int{"45": 45, "2:05": 125, "1:02:03": 3723}
	for in, want := range tests {
		got, err := TimeToSeconds(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := TimeToSeconds("1:xx")
	assert.Error(t, err)
}

func TestSecondsToMMSSRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		secs := rapid.IntRange(0, 100000).Draw(rt, "seconds")
		s, err := SecondsToMMSS(secs)
		if err != nil {
			rt.Fatal(err)
		}
		back, err := TimeToSeconds(s)
		if err != nil || back != secs {
			rt.Fatalf("%d -> %q -> %d (%v)", secs, s, back, err)
		}
	})

	_, err := SecondsToMMSS(-1)
	assert.Error(t, err)
}
